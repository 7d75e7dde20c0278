package services

import (
	"context"
	"strings"

	"daycare-backend/internal/apperr"
	"daycare-backend/internal/auth"
	"daycare-backend/internal/metrics"
	"daycare-backend/internal/models"
	"daycare-backend/internal/validation"
)

const (
	msgRequiredFields = "Please provide all required fields"
	msgInvalidEmail   = "Invalid email"
	msgUserExists     = "User already exists"
	msgEmailInUse     = "Email already in use"
	msgInvalidPhone   = "Invalid phone number"
	msgInvalidAge     = "Invalid age"
	msgInvalidGender  = "Invalid gender"
	msgInvalidStay    = "Invalid duration of stay"
)

// IdentityService registers and maintains managers, babysitters and children.
type IdentityService struct {
	Managers    ManagerStore
	Babysitters BabysitterStore
	Children    ChildStore
}

func NewIdentityService(managers ManagerStore, babysitters BabysitterStore, children ChildStore) *IdentityService {
	return &IdentityService{Managers: managers, Babysitters: babysitters, Children: children}
}

// RegisterManager creates a manager account (public admin sign-up).
func (s *IdentityService) RegisterManager(ctx context.Context, req *models.RegisterManagerRequest) (*models.Manager, error) {
	if validation.Blank(req.Fullname, req.Gender, req.NIN, req.Email, req.Phone, req.Password) || !req.Age.Present() {
		return nil, apperr.Invalid(msgRequiredFields)
	}
	if !validation.Email(req.Email) {
		return nil, apperr.Invalid(msgInvalidEmail)
	}
	if req.Age.Value < 0 {
		return nil, apperr.Invalid(msgInvalidAge)
	}

	exists, err := s.Managers.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Invalid(msgUserExists)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err, "failed to hash password")
	}

	m := &models.Manager{
		Fullname:     strings.TrimSpace(req.Fullname),
		Age:          req.Age.Value,
		Gender:       req.Gender,
		NIN:          req.NIN,
		Email:        strings.TrimSpace(req.Email),
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.Managers.Create(ctx, m); err != nil {
		return nil, err
	}
	metrics.RecordsCreated.WithLabelValues("manager").Inc()
	return m, nil
}

// RegisterBabysitter creates a babysitter account on behalf of a manager.
func (s *IdentityService) RegisterBabysitter(ctx context.Context, req *models.RegisterBabysitterRequest) (*models.Babysitter, error) {
	if validation.Blank(req.Fullname, req.Gender, req.NIN, req.Email, req.Phone, req.Password,
		req.NextOfKinName, req.NextOfKinPhone, req.NextOfKinRelationship) || !req.Age.Present() {
		return nil, apperr.Invalid(msgRequiredFields)
	}
	if !validation.Email(req.Email) {
		return nil, apperr.Invalid(msgInvalidEmail)
	}
	if req.Age.Value < 0 {
		return nil, apperr.Invalid(msgInvalidAge)
	}
	if !validation.Phone(req.NextOfKinPhone) {
		return nil, apperr.Invalid(msgInvalidPhone)
	}

	taken, err := s.Babysitters.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Invalid(msgUserExists)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err, "failed to hash password")
	}

	b := &models.Babysitter{
		Fullname:              strings.TrimSpace(req.Fullname),
		Age:                   req.Age.Value,
		Gender:                req.Gender,
		NIN:                   req.NIN,
		Email:                 strings.TrimSpace(req.Email),
		Phone:                 req.Phone,
		PasswordHash:          hash,
		NextOfKinName:         req.NextOfKinName,
		NextOfKinPhone:        req.NextOfKinPhone,
		NextOfKinRelationship: req.NextOfKinRelationship,
	}
	if err := s.Babysitters.Create(ctx, b); err != nil {
		return nil, err
	}
	metrics.RecordsCreated.WithLabelValues("babysitter").Inc()
	return b, nil
}

// RegisterChild validates field by field, reporting the first problem.
func (s *IdentityService) RegisterChild(ctx context.Context, req *models.RegisterChildRequest) (*models.Child, error) {
	switch {
	case validation.Blank(req.FullName):
		return nil, apperr.Invalid("Full name is required")
	case !req.Age.Present():
		return nil, apperr.Invalid("Age is required")
	case validation.Blank(req.Gender):
		return nil, apperr.Invalid("Gender is required")
	case validation.Blank(req.ParentGuardianName):
		return nil, apperr.Invalid("Parent/guardian name is required")
	case validation.Blank(req.ParentGuardianPhone):
		return nil, apperr.Invalid("Parent/guardian phone number is required")
	case validation.Blank(req.ParentGuardianEmail):
		return nil, apperr.Invalid("Parent/guardian email is required")
	case validation.Blank(req.ParentGuardianRelationship):
		return nil, apperr.Invalid("Parent/guardian relationship is required")
	case validation.Blank(req.DurationOfStay):
		return nil, apperr.Invalid("Duration of stay is required")
	}

	if !validation.Email(req.ParentGuardianEmail) {
		return nil, apperr.Invalid(msgInvalidEmail)
	}
	taken, err := s.Children.EmailTaken(ctx, req.ParentGuardianEmail, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Invalid(msgEmailInUse)
	}
	if err := checkChildRules(req.ParentGuardianPhone, req.DurationOfStay, req.Age.Value, req.Gender); err != nil {
		return nil, err
	}

	c := &models.Child{
		FullName:                   strings.TrimSpace(req.FullName),
		Age:                        req.Age.Value,
		Gender:                     req.Gender,
		ParentGuardianName:         req.ParentGuardianName,
		ParentGuardianPhone:        req.ParentGuardianPhone,
		ParentGuardianEmail:        strings.TrimSpace(req.ParentGuardianEmail),
		ParentGuardianRelationship: req.ParentGuardianRelationship,
		SpecialNeeds:               req.SpecialNeeds,
		DurationOfStay:             req.DurationOfStay,
	}
	if err := s.Children.Create(ctx, c); err != nil {
		return nil, err
	}
	metrics.RecordsCreated.WithLabelValues("child").Inc()
	return c, nil
}

func checkChildRules(phone, stay string, age int, gender string) error {
	if !validation.Phone(phone) {
		return apperr.Invalid(msgInvalidPhone)
	}
	if !validation.DurationOfStay(stay) {
		return apperr.Invalid(msgInvalidStay)
	}
	if !validation.ChildAge(age) {
		return apperr.Invalid(msgInvalidAge)
	}
	if !validation.Gender(gender) {
		return apperr.Invalid(msgInvalidGender)
	}
	return nil
}

func (s *IdentityService) ListBabysitters(ctx context.Context) ([]*models.Babysitter, error) {
	return s.Babysitters.List(ctx)
}

func (s *IdentityService) GetBabysitter(ctx context.Context, id int) (*models.Babysitter, error) {
	return s.Babysitters.Get(ctx, id)
}

// UpdateBabysitter applies a partial update. Supplied values are validated
// like a registration; one bad value rejects the whole request.
func (s *IdentityService) UpdateBabysitter(ctx context.Context, id int, req *models.UpdateBabysitterRequest) (*models.Babysitter, error) {
	b, err := s.Babysitters.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, v := range []*string{req.Fullname, req.Gender, req.NIN, req.Email, req.Phone, req.Password,
		req.NextOfKinName, req.NextOfKinPhone, req.NextOfKinRelationship} {
		if v != nil && validation.Blank(*v) {
			return nil, apperr.Invalid(msgRequiredFields)
		}
	}

	if req.Email != nil {
		if !validation.Email(*req.Email) {
			return nil, apperr.Invalid(msgInvalidEmail)
		}
		taken, err := s.Babysitters.EmailTaken(ctx, *req.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Invalid(msgEmailInUse)
		}
		b.Email = strings.TrimSpace(*req.Email)
	}
	if req.Age != nil {
		if !req.Age.Present() || req.Age.Value < 0 {
			return nil, apperr.Invalid(msgInvalidAge)
		}
		b.Age = req.Age.Value
	}
	if req.NextOfKinPhone != nil {
		if !validation.Phone(*req.NextOfKinPhone) {
			return nil, apperr.Invalid(msgInvalidPhone)
		}
		b.NextOfKinPhone = *req.NextOfKinPhone
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperr.Internal(err, "failed to hash password")
		}
		b.PasswordHash = hash
	}

	setString(&b.Fullname, req.Fullname)
	setString(&b.Gender, req.Gender)
	setString(&b.NIN, req.NIN)
	setString(&b.Phone, req.Phone)
	setString(&b.NextOfKinName, req.NextOfKinName)
	setString(&b.NextOfKinRelationship, req.NextOfKinRelationship)

	if err := s.Babysitters.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *IdentityService) DeleteBabysitter(ctx context.Context, id int) error {
	return s.Babysitters.Delete(ctx, id)
}

func (s *IdentityService) ListChildren(ctx context.Context) ([]*models.Child, error) {
	return s.Children.List(ctx)
}

func (s *IdentityService) GetChild(ctx context.Context, id int) (*models.Child, error) {
	return s.Children.Get(ctx, id)
}

func (s *IdentityService) GetChildByName(ctx context.Context, name string) (*models.Child, error) {
	if validation.Blank(name) {
		return nil, apperr.Invalid("Name is required")
	}
	return s.Children.GetByName(ctx, strings.TrimSpace(name))
}

// UpdateChild applies a partial update with the registration rules.
func (s *IdentityService) UpdateChild(ctx context.Context, id int, req *models.UpdateChildRequest) (*models.Child, error) {
	c, err := s.Children.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	required := []struct {
		v   *string
		msg string
	}{
		{req.FullName, "Full name is required"},
		{req.Gender, "Gender is required"},
		{req.ParentGuardianName, "Parent/guardian name is required"},
		{req.ParentGuardianPhone, "Parent/guardian phone number is required"},
		{req.ParentGuardianEmail, "Parent/guardian email is required"},
		{req.ParentGuardianRelationship, "Parent/guardian relationship is required"},
		{req.DurationOfStay, "Duration of stay is required"},
	}
	for _, f := range required {
		if f.v != nil && validation.Blank(*f.v) {
			return nil, apperr.Invalid(f.msg)
		}
	}

	if req.ParentGuardianEmail != nil {
		if !validation.Email(*req.ParentGuardianEmail) {
			return nil, apperr.Invalid(msgInvalidEmail)
		}
		taken, err := s.Children.EmailTaken(ctx, *req.ParentGuardianEmail, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Invalid(msgEmailInUse)
		}
		c.ParentGuardianEmail = strings.TrimSpace(*req.ParentGuardianEmail)
	}
	if req.Age != nil {
		if !req.Age.Present() {
			return nil, apperr.Invalid("Age is required")
		}
		c.Age = req.Age.Value
	}

	setString(&c.FullName, req.FullName)
	setString(&c.Gender, req.Gender)
	setString(&c.ParentGuardianName, req.ParentGuardianName)
	setString(&c.ParentGuardianPhone, req.ParentGuardianPhone)
	setString(&c.ParentGuardianRelationship, req.ParentGuardianRelationship)
	setString(&c.DurationOfStay, req.DurationOfStay)
	if req.SpecialNeeds != nil {
		c.SpecialNeeds = *req.SpecialNeeds
	}

	if err := checkChildRules(c.ParentGuardianPhone, c.DurationOfStay, c.Age, c.Gender); err != nil {
		return nil, err
	}
	if err := s.Children.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *IdentityService) DeleteChild(ctx context.Context, id int) error {
	return s.Children.Delete(ctx, id)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
