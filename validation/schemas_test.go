package validation_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/msaldanha/taskflow/validation"
)

type schemaCase struct {
	value any
	valid bool
}

func checkSchema(name string, schema validation.Schema, cases []schemaCase) {
	Describe(name, func() {
		for _, tc := range cases {
			tc := tc
			It("Should validate "+describe(tc.value), func() {
				er := schema.Validate(tc.value)
				if tc.valid {
					Expect(er).To(BeNil())
				} else {
					Expect(er).NotTo(BeNil())
					Expect(errors.Is(er, validation.ErrInvalid)).To(BeTrue())
				}
			})
		}
	})
}

func describe(v any) string {
	if s, ok := v.(string); ok {
		return "\"" + s + "\""
	}
	js, _ := jsonString(v)
	return js
}

var _ = Describe("Schemas", func() {
	checkSchema("Email", validation.EmailSchema, []schemaCase{
		{value: "a@b.com", valid: true},
		{value: "ana.garcia@taskflow.io", valid: true},
		{value: "not-an-email", valid: false},
		{value: "", valid: false},
		{value: nil, valid: false},
		{value: 42, valid: false},
	})

	checkSchema("Password", validation.PasswordSchema, []schemaCase{
		{value: "Abcde12", valid: false},
		{value: "Abcdef12", valid: true},
		{value: "abcdef12", valid: false},
		{value: "ABCDEF12", valid: false},
		{value: "Abcdefgh", valid: false},
		{value: "Pässwörd1", valid: true},
	})

	checkSchema("Name", validation.NameSchema, []schemaCase{
		{value: "Ana García", valid: true},
		{value: "José Ñúñez", valid: true},
		{value: "A", valid: false},
		{value: "Al", valid: true},
		{value: strings.Repeat("a", 50), valid: true},
		{value: strings.Repeat("a", 51), valid: false},
		{value: "R2D2", valid: false},
		{value: "Ana-Maria", valid: false},
	})

	checkSchema("Phone", validation.PhoneSchema, []schemaCase{
		{value: "+34600123456", valid: true},
		{value: "600123456", valid: true},
		{value: "12", valid: true},
		{value: "1", valid: false},
		{value: "+0600123456", valid: false},
		{value: "1234567890123456", valid: false},
		{value: "600 123 456", valid: false},
	})

	checkSchema("URL", validation.URLSchema, []schemaCase{
		{value: "https://x.com", valid: true},
		{value: "https://taskflow.io/pricing?plan=pro", valid: true},
		{value: "http://x.com", valid: false},
		{value: "ftp://x.com", valid: false},
		{value: "HTTPS://x.com", valid: false},
		{value: "Https://x.com", valid: false},
		{value: "https:x.com", valid: false},
		{value: "not a url", valid: false},
	})

	checkSchema("File", validation.FileSchema, []schemaCase{
		{value: validation.FileMeta{Size: 5242880, Type: "image/png"}, valid: true},
		{value: validation.FileMeta{Size: 5242881, Type: "image/png"}, valid: false},
		{value: validation.FileMeta{Size: 1024, Type: "image/gif"}, valid: false},
		{value: map[string]any{"size": 10, "type": "image/webp"}, valid: true},
		{value: map[string]any{"type": "image/jpeg"}, valid: false},
		{value: "file.png", valid: false},
	})

	It("Should report every failed rule", func() {
		er := validation.EmailSchema.Validate("")
		fe := validation.Collect(er)
		Expect(fe[""]).To(ConsistOf("please enter a valid email", "email is required"))
	})

	It("Should report nested paths for objects", func() {
		er := validation.FileSchema.Validate(validation.FileMeta{Size: 6 << 20, Type: "text/plain"})
		fe := validation.Collect(er)
		Expect(fe).To(HaveKey("size"))
		Expect(fe).To(HaveKey("type"))
	})

	It("Should not change a schema when deriving from it", func() {
		base := validation.String().Min(2, "too short")
		strict := base.Max(3, "too long")

		Expect(base.Validate("abcdef")).To(BeNil())
		Expect(strict.Validate("abcdef")).NotTo(BeNil())
	})

	It("Should accept a blank optional string", func() {
		Expect(validation.PhoneSchema.Optional().Validate("")).To(BeNil())
		Expect(validation.PhoneSchema.Optional().Validate(nil)).To(BeNil())
		Expect(validation.PhoneSchema.Optional().Validate("abc")).NotTo(BeNil())
	})

	It("Should validate number bounds", func() {
		s := validation.Number().Min(1, "too small").Max(10, "too big")
		Expect(s.Validate(1)).To(BeNil())
		Expect(s.Validate(int64(10))).To(BeNil())
		Expect(s.Validate(10.5)).NotTo(BeNil())
		Expect(s.Validate(0)).NotTo(BeNil())
		Expect(s.Validate("5")).NotTo(BeNil())
	})

	It("Should panic on a nil field schema", func() {
		Expect(func() {
			validation.Object(map[string]validation.Schema{"name": nil})
		}).To(Panic())
	})
})
