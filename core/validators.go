package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "{0} é obrigatório"

	dueDateTag  = "duedate"
	dueDateText = "{0} deve estar no formato aaaa-mm-dd ou dd/mm/aaaa"

	requiredTag = "required"
)

// NewTranslator returns the pt_BR translator used for user-facing validation messages.
func NewTranslator() ut.Translator {
	br := pt_BR.New()
	uni := ut.New(br, br)
	translator, _ := uni.GetTranslator("pt_BR")
	return translator
}

// InitValidators registers translations, json field names and the custom tags on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = pt_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	_ = validate.RegisterValidation(dueDateTag, dueDateValidation)
	RegisterCustomTranslation(validate, translator, dueDateTag, dueDateText)

	RegisterCustomTranslation(validate, translator, requiredTag, notBlankText, true)
}

// NewValidate returns a validator initialised with InitValidators.
func NewValidate(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	InitValidators(validate, translator)
	return validate
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateErrors flattens err into field -> message when it holds validation failures.
func TranslateErrors(err error, translator ut.Translator) (map[string]string, bool) {
	switch vErr := err.(type) {
	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(vErr))
		for _, fe := range vErr {
			fldErrs[fe.Field()] = fe.Translate(translator)
		}
		return fldErrs, true
	case *ValidationError:
		if vErr.Fields == nil {
			return nil, false
		}
		fldErrs := make(map[string]string, len(vErr.Fields))
		for _, fe := range vErr.Fields {
			fldErrs[fe.Field] = fe.Error
		}
		return fldErrs, true
	}
	return nil, false
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func dueDateValidation(fl validator.FieldLevel) bool {
	_, err := NormalizeDueDate(fl.Field().String())
	return err == nil
}
