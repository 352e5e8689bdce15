package validation_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/msaldanha/taskflow/validation"
)

var _ = Describe("SanitizeInput", func() {
	cases := map[string]string{
		"javascript:alert(1)":                 "(1)",
		`<a onclick="steal()">link</a>`:       `a "steal()"link/a`,
		"<img src=x onerror=alert(1)>":        "img src=x (1)",
		"  Console.log(secret)  ":             ".log(secret)",
		"JAVASCRIPT:prompt('x')":              "('x')",
		"Plain text stays":                    "Plain text stays",
		"alerting words survive":              "alerting words survive",
		"Diseñar logo de la empresa":          "Diseñar logo de la empresa",
		"javajavascript:script:confirm('ok')": "('ok')",
	}
	for in, want := range cases {
		in, want := in, want
		It("Should sanitize "+in, func() {
			Expect(validation.SanitizeInput(in)).To(Equal(want))
		})
	}

	It("Should be idempotent", func() {
		inputs := []string{
			"<script>alert('xss')</script>",
			"javascript:alert(1)",
			`<div onclick=alert(1)>click</div>`,
			"oonclick=nclick=hello",
			"<<script>>",
			" on on= = ",
			"jajavascript:vascript:",
		}
		for _, in := range inputs {
			once := validation.SanitizeInput(in)
			Expect(validation.SanitizeInput(once)).To(Equal(once), in)
		}
	})

	It("Should sanitize string fields only", func() {
		out := validation.SanitizeFields(map[string]any{"title": " <b>Ship</b> ", "size": 10})
		Expect(out).To(Equal(map[string]any{"title": "bShip/b", "size": 10}))
	})
})
