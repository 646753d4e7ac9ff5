package definition

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const definitionNameMaxLength = 63

var (
	definitionNameRe = regexp.MustCompile(`^[a-zA-Z0-9]([-_.a-zA-Z0-9]*[a-zA-Z0-9])?$`)
	envNameRe        = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	noSpacesRe       = regexp.MustCompile(`^[^\s]+$`)
)

var (
	defValidator     *validator.Validate
	defValidatorOnce sync.Once
)

// V returns the shared validator with the definition rules registered.
func V() *validator.Validate {
	defValidatorOnce.Do(func() {
		defValidator = validator.New(validator.WithRequiredStructEnabled())
		defValidator.RegisterValidation("definitionName", definitionNameValidator)
		defValidator.RegisterValidation("envName", envNameValidator)
		defValidator.RegisterValidation("flag", flagValidator)
		defValidator.RegisterValidation("noSpaces", noSpacesValidator)
	})
	return defValidator
}

func definitionNameValidator(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return len(name) <= definitionNameMaxLength && definitionNameRe.MatchString(name)
}

func envNameValidator(fl validator.FieldLevel) bool {
	return envNameRe.MatchString(fl.Field().String())
}

// flagValidator accepts -x, --long-name and similar tokens. A flag containing '='
// could never be recovered from an existing argument vector.
func flagValidator(fl validator.FieldLevel) bool {
	flag := fl.Field().String()
	if !strings.HasPrefix(flag, "-") || strings.Trim(flag, "-") == "" {
		return false
	}
	return noSpacesRe.MatchString(flag) && !strings.Contains(flag, "=")
}

func noSpacesValidator(fl validator.FieldLevel) bool {
	return noSpacesRe.MatchString(fl.Field().String())
}

// Validate checks a decoded definition. The returned error wraps ErrValidation
// and a ValidationErrors value listing every failed rule.
func Validate(def *ServerDefinition) error {
	var ves ValidationErrors

	if err := V().Struct(def); err != nil {
		ves = append(ves, translate("", err)...)
	}

	slotNames := make(map[string]bool)
	for i, slot := range def.Args.Configurable {
		prefix := fmt.Sprintf("args.configurable[%d]", i)
		switch s := slot.(type) {
		case PositionalArg:
			if err := V().Struct(s); err != nil {
				ves = append(ves, translate(prefix, err)...)
			}
		case NamedArg:
			if err := V().Struct(s); err != nil {
				ves = append(ves, translate(prefix, err)...)
			}
		case FixedArg:
			ves = append(ves, errInvalidValue(prefix, s.Value, "fixed arguments belong in args.fixed"))
			continue
		case nil:
			ves = append(ves, errMissingRequiredAttribute(prefix, nil))
			continue
		}
		name := slot.SlotName()
		if name == "" {
			continue
		}
		if slotNames[name] {
			ves = append(ves, errDuplicate(prefix+".name", name))
		}
		slotNames[name] = true
	}

	envNames := make(map[string]bool)
	for i, v := range def.Env {
		if v.Name == "" {
			continue
		}
		if envNames[v.Name] {
			ves = append(ves, errDuplicate(fmt.Sprintf("env[%d].name", i), v.Name))
		}
		envNames[v.Name] = true
	}

	if len(ves) > 0 {
		return ErrValidation.Err(ves)
	}
	return nil
}

// translate converts validator errors into ValidationErrors with JSON-style paths.
func translate(prefix string, err error) ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: prefix, ErrStr: err.Error()}}
	}
	ves := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(prefix, fe.Namespace())
		value := fe.Value()
		switch fe.Tag() {
		case "required":
			ves = append(ves, errMissingRequiredAttribute(field, value))
		case "definitionName":
			ves = append(ves, errInvalidNameFormat(field, value))
		case "envName":
			ves = append(ves, errInvalidEnvName(field, value))
		case "flag":
			ves = append(ves, errInvalidFlag(field, value))
		case "noSpaces":
			ves = append(ves, errNoSpaces(field, value))
		case "oneof":
			ves = append(ves, errInvalidValue(field, value, "must be one of: "+fe.Param()))
		default:
			ves = append(ves, errInvalidValue(field, value, "validation failed on "+fe.Tag()))
		}
	}
	return ves
}

// fieldPath turns "ServerDefinition.Env[0].Name" into "env[0].name", prefixed
// with prefix when given. Every JSON key in a definition is its lower-cased Go
// field name.
func fieldPath(prefix, namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}
	for i, s := range segments {
		segments[i] = strings.ToLower(s)
	}
	path := strings.Join(segments, ".")
	if prefix == "" {
		return path
	}
	return prefix + "." + path
}
