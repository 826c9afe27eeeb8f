// Package validation checks request payloads field by field and reports every
// failure as a field/message pair. Checks are invoked explicitly by the
// services before any business logic runs.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"kontak/internal/errs"
	"kontak/internal/models"
	"kontak/internal/search"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldError describes one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the list of failures of one request. It unwraps to errs.ErrValidation.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return strings.Join(parts, ", ")
}

func (e *Errors) Unwrap() error { return errs.ErrValidation }

// Validator runs field checks through go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// passwordRule bounds passwords by bytes, the unit bcrypt limits.
const passwordRule = "notblank,maxbytes=72"

// New returns a Validator with the notblank and maxbytes rules registered.
func New() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank: %v", err))
	}
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(fmt.Sprintf("register maxbytes: %v", err))
	}
	return &Validator{validate: v}
}

// maxBytes limits the encoded length of a string, unlike max which counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

type checker struct {
	validate *validator.Validate
	fields   []FieldError
}

func (v *Validator) checker() *checker {
	return &checker{validate: v.validate}
}

func (c *checker) check(field string, value any, tag string) {
	err := c.validate.Var(value, tag)
	if err == nil {
		return
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		c.fields = append(c.fields, FieldError{Field: field, Message: err.Error()})
		return
	}
	// Report only the first failed rule of a field.
	c.fields = append(c.fields, FieldError{Field: field, Message: message(ve[0])})
}

func (c *checker) optional(field string, value *string, tag string) {
	if value != nil {
		c.check(field, *value, tag)
	}
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Errors{Fields: c.fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes", fe.Param())
	case "email":
		return "must be a valid email address"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}

// RegisterUser checks a registration request.
func (v *Validator) RegisterUser(req models.RegisterUserRequest) error {
	c := v.checker()
	c.check("username", req.Username, "notblank,max=100")
	c.check("password", req.Password, passwordRule)
	c.check("name", req.Name, "notblank,max=100")
	return c.err()
}

// UpdateUser checks a partial user update.
func (v *Validator) UpdateUser(req models.UpdateUserRequest) error {
	c := v.checker()
	c.optional("name", req.Name, "max=100")
	c.optional("password", req.Password, passwordRule)
	return c.err()
}

// LoginUser checks a login request.
func (v *Validator) LoginUser(req models.LoginUserRequest) error {
	c := v.checker()
	c.check("username", req.Username, "notblank,max=100")
	c.check("password", req.Password, passwordRule)
	return c.err()
}

// CreateContact checks a new contact.
func (v *Validator) CreateContact(req models.CreateContactRequest) error {
	c := v.checker()
	c.check("firstName", req.FirstName, "notblank,max=100")
	c.optional("lastName", req.LastName, "max=100")
	c.optional("email", req.Email, "max=100,email")
	c.optional("phone", req.Phone, "max=100")
	return c.err()
}

// UpdateContact checks a partial contact update. Supplied fields follow the
// same rules as on creation.
func (v *Validator) UpdateContact(req models.UpdateContactRequest) error {
	c := v.checker()
	c.check("id", req.ID, "notblank")
	c.optional("firstName", req.FirstName, "notblank,max=100")
	c.optional("lastName", req.LastName, "max=100")
	c.optional("email", req.Email, "max=100,email")
	c.optional("phone", req.Phone, "max=100")
	return c.err()
}

func (c *checker) address(street, city, province *string, country string, postalCode *string) {
	c.optional("street", street, "max=200")
	c.optional("city", city, "max=100")
	c.optional("province", province, "max=100")
	c.check("country", country, "notblank,max=100")
	c.optional("postalCode", postalCode, "max=10")
}

// CreateAddress checks a new address.
func (v *Validator) CreateAddress(req models.CreateAddressRequest) error {
	c := v.checker()
	c.check("contactId", req.ContactID, "notblank")
	c.address(req.Street, req.City, req.Province, req.Country, req.PostalCode)
	return c.err()
}

// UpdateAddress checks an address replacement.
func (v *Validator) UpdateAddress(req models.UpdateAddressRequest) error {
	c := v.checker()
	c.check("contactId", req.ContactID, "notblank")
	c.check("addressId", req.AddressID, "notblank")
	c.address(req.Street, req.City, req.Province, req.Country, req.PostalCode)
	return c.err()
}

// SearchFilter checks paging bounds of a contact search. The offset of the
// requested page must fit in an int.
func (v *Validator) SearchFilter(f search.Filter) error {
	c := v.checker()
	c.check("page", f.Page, "gte=0")
	c.check("size", f.Size, fmt.Sprintf("gte=1,lte=%d", search.MaxSize))
	if f.Size >= 1 && f.Size <= search.MaxSize {
		c.check("page", f.Page, fmt.Sprintf("lte=%d", math.MaxInt/f.Size))
	}
	return c.err()
}
