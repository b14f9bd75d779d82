package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"hamperhouse/pkg/logger"
	"hamperhouse/pkg/metrics"
	"hamperhouse/storefront-service/internal/app/storefront/entity"
	"hamperhouse/storefront-service/internal/app/storefront/infrastructure"

	"github.com/go-playground/validator/v10"
)

const (
	ContactConfirmation   = "Thank you! We have received your message and will get back to you shortly."
	ContactResetSeconds   = 5
	eventContactSubmitted = "CONTACT_SUBMITTED"
)

var (
	personNamePattern = regexp.MustCompile(`^[\p{L}\s]+$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	phoneStripper     = strings.NewReplacer(" ", "", "(", "", ")", "", "-", "")
)

// Подписи полей для сообщений об ошибках
var fieldLabels = map[string]string{
	"firstName": "First name",
	"lastName":  "Last name",
	"email":     "Email",
	"phone":     "Phone number",
	"message":   "Message",
}

// ValidationError - ошибки контактной формы по полям
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ContactService проверяет и отправляет контактную форму
type ContactService struct {
	api       infrastructure.CatalogAPI
	publisher infrastructure.MessagePublisher
	validate  *validator.Validate
}

// contactTags - собственные теги валидации контактной формы
var contactTags = map[string]validator.Func{
	"personname": func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	},
	"basicemail": func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	},
	"intlphone": func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(phoneStripper.Replace(fl.Field().String()))
	},
}

func NewContactService(api infrastructure.CatalogAPI, publisher infrastructure.MessagePublisher) (*ContactService, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := registerTags(v, contactTags); err != nil {
		return nil, err
	}

	return &ContactService{
		api:       api,
		publisher: publisher,
		validate:  v,
	}, nil
}

func registerTags(v *validator.Validate, tags map[string]validator.Func) error {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validation tag %q: %w", tag, err)
		}
	}
	return nil
}

// Validate возвращает ошибки по полям; пустая карта - форма валидна
func (s *ContactService) Validate(form entity.ContactForm) map[string]string {
	form = normalizeContact(form)
	errs := make(map[string]string)

	err := s.validate.Struct(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = "Invalid form"
		return errs
	}

	for _, fe := range verrs {
		errs[fe.Field()] = contactMessage(fe)
	}
	return errs
}

// Submit отправляет заявку в API; при ошибках валидации запрос не делается
func (s *ContactService) Submit(ctx context.Context, form entity.ContactForm) (*entity.ContactResponse, error) {
	if fields := s.Validate(form); len(fields) > 0 {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		return nil, &ValidationError{Fields: fields}
	}

	form = normalizeContact(form)
	req := entity.SubmissionRequest{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Email:          form.Email,
		Phone:          form.Phone,
		ProductDetails: form.ProductDetails,
		Message:        form.Message,
	}

	if err := s.api.CreateSubmission(ctx, req); err != nil {
		metrics.ContactSubmissions.WithLabelValues("failed").Inc()
		logger.Error().Err(err).Str("email", form.Email).Msg("Failed to submit contact form")
		return nil, fmt.Errorf("failed to submit contact form: %w", err)
	}

	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	s.publishSubmitted(ctx, form)

	return &entity.ContactResponse{
		Message:           ContactConfirmation,
		ResetAfterSeconds: ContactResetSeconds,
	}, nil
}

func (s *ContactService) publishSubmitted(ctx context.Context, form entity.ContactForm) {
	if s.publisher == nil {
		return
	}

	data, err := json.Marshal(entity.StorefrontEvent{
		EventType: eventContactSubmitted,
		Entity:    entitySubmission,
		Name:      strings.TrimSpace(form.FirstName + " " + form.LastName),
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal contact event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, entitySubmission, data); err != nil {
		logger.Error().Err(err).Msg("Failed to publish contact event")
	}
}

func normalizeContact(form entity.ContactForm) entity.ContactForm {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.ProductDetails = strings.TrimSpace(form.ProductDetails)
	form.Message = strings.TrimSpace(form.Message)
	return form
}

func contactMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "personname":
		return label + " can only contain letters and spaces"
	case "basicemail":
		return "Please enter a valid email address"
	case "intlphone":
		return "Please enter a valid phone number"
	default:
		return label + " is invalid"
	}
}
