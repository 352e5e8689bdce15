package validation

var (
	SignUpSchema = Object(map[string]Schema{
		"name":     NameSchema,
		"email":    EmailSchema,
		"password": PasswordSchema,
	})

	SignInSchema = Object(map[string]Schema{
		"email":    EmailSchema,
		"password": String().Min(1, "password is required"),
	})

	ContactSchema = Object(map[string]Schema{
		"name":    NameSchema,
		"email":   EmailSchema,
		"message": String().Refine(func(s string) bool { return !isBlank(s) }, "message is required").Max(2000, "message cannot be longer than 2000 characters"),
	})

	ProfileSchema = Object(map[string]Schema{
		"name":    NameSchema,
		"phone":   PhoneSchema.Optional(),
		"website": URLSchema.Optional(),
		"avatar":  FileSchema.Optional(),
	})

	TaskSchema = Object(map[string]Schema{
		"title":       String().Refine(func(s string) bool { return !isBlank(s) }, "task title is required").Max(100, "title cannot be longer than 100 characters"),
		"description": String().Max(500, "description cannot be longer than 500 characters").Optional(),
		"status":      String().OneOf([]string{"pending", "in_progress", "review", "completed"}, "unknown status").Optional(),
		"priority":    String().OneOf([]string{"low", "medium", "high"}, "unknown priority").Optional(),
		"dueDate":     String().Matches(dateRe, "due date must be formatted as YYYY-MM-DD").Optional(),
	})
)

// Forms lists the record schemas by form name.
var Forms = map[string]*ObjectSchema{
	"signup":  SignUpSchema,
	"signin":  SignInSchema,
	"contact": ContactSchema,
	"profile": ProfileSchema,
	"task":    TaskSchema,
}

// Result is either Success with the validated Data, or the per field Errors.
type Result[T any] struct {
	Success bool
	Data    T
	Errors  FieldErrors
}

// Err returns the field errors as an error, or nil on success.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return r.Errors
}

// ValidateFormData applies schema to data. Expected validation failures come back in
// the result; faults in data encoding or the schema itself panic.
func ValidateFormData[T any](data T, schema *ObjectSchema) Result[T] {
	er := schema.Validate(data)
	if er == nil {
		return Result[T]{Success: true, Data: data}
	}
	return Result[T]{Errors: Collect(er)}
}
