package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"smilecare/internal/models/db_models"
	"smilecare/internal/models/request_models"
	"smilecare/internal/models/response_models"
	"smilecare/internal/repositories"
	"smilecare/pkg/utils"
)

const otpLifetime = 24 * time.Hour

// DentistServiceInterface covers dentist account management and the OTP
// onboarding workflow: invite -> otp-pending -> password set + session.
type DentistServiceInterface interface {
	Provision(ctx context.Context, actingRole db_models.UserRole, request request_models.CreateDentistRequest) (*response_models.ProvisionResponse, error)
	ProvisionWithProfile(ctx context.Context, actingRole db_models.UserRole, request request_models.CreateDentistWithProfileRequest) (*response_models.ProvisionResponse, error)
	VerifyOtp(ctx context.Context, request request_models.VerifyOtpRequest) (*response_models.AccountResponse, error)
	SetupPassword(ctx context.Context, request request_models.SetupPasswordRequest) (string, *response_models.AccountResponse, error)
	ResendOtp(ctx context.Context, actingRole db_models.UserRole, id string) (*response_models.ProvisionResponse, error)

	ListDentists(ctx context.Context) ([]response_models.DentistResponse, error)
	GetDentist(ctx context.Context, id string) (*response_models.DentistResponse, error)
	UpdateDentist(ctx context.Context, actingRole db_models.UserRole, id string, request request_models.UpdateDentistProfileRequest) error
	DeleteDentist(ctx context.Context, actingRole db_models.UserRole, id string) error
}

type DentistService struct {
	userRepo    repositories.UserRepository
	mailService IMailService
	env         string
}

func NewDentistService(userRepo repositories.UserRepository, mailService IMailService, env string) DentistServiceInterface {
	return &DentistService{
		userRepo:    userRepo,
		mailService: mailService,
		env:         env,
	}
}

// Provision invites a dentist: a DOCTOR account with a fresh 6-digit code and
// a 24-hour expiry, no password yet. Mail delivery is best-effort: a failed
// send leaves the account in place (the resend path is the recovery) and is
// reported through EmailSent.
func (d *DentistService) Provision(ctx context.Context, actingRole db_models.UserRole, request request_models.CreateDentistRequest) (*response_models.ProvisionResponse, error) {
	if actingRole != db_models.RoleAdmin {
		return nil, utils.ErrForbidden
	}

	existing, err := d.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	user, otp, err := d.newPendingDentist(request.Name, request.Email)
	if err != nil {
		return nil, err
	}

	if err := d.userRepo.Insert(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	emailSent := true
	if err := d.mailService.SendPasswordSetupMail(user.Email, user.Name, otp); err != nil {
		log.Printf("setup mail to %s failed: %v", user.Email, err)
		emailSent = false
	}

	return d.provisionResponse(user, otp, emailSent), nil
}

// ProvisionWithProfile creates the account and the dentist profile in one
// transaction. Unlike Provision, a failed OTP mail here rolls the pair back
// with a compensating delete, since the invite carries data an operator
// would otherwise have to re-enter against a half-created record.
func (d *DentistService) ProvisionWithProfile(ctx context.Context, actingRole db_models.UserRole, request request_models.CreateDentistWithProfileRequest) (*response_models.ProvisionResponse, error) {
	if actingRole != db_models.RoleAdmin {
		return nil, utils.ErrForbidden
	}

	existing, err := d.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	user, otp, err := d.newPendingDentist(request.Name, request.Email)
	if err != nil {
		return nil, err
	}
	profile := &db_models.DentistProfile{
		Specialty: request.Specialty,
		Phone:     request.Phone,
		Bio:       request.Bio,
	}

	if err := d.userRepo.InsertWithProfile(ctx, user, profile); err != nil {
		return nil, utils.ErrDatabaseError
	}

	// The send happens after commit; on failure we compensate rather than
	// abort, because the SMTP call cannot join the database transaction.
	if err := d.mailService.SendPasswordSetupMail(user.Email, user.Name, otp); err != nil {
		log.Printf("setup mail to %s failed, rolling back invite: %v", user.Email, err)
		if delErr := d.userRepo.HardDeleteWithProfile(ctx, user.ID); delErr != nil {
			log.Printf("compensating delete for %s failed: %v", user.Email, delErr)
		}
		return nil, utils.ErrMailDelivery
	}

	return d.provisionResponse(user, otp, true), nil
}

// VerifyOtp is a pre-check: it validates the (email, otp) pair without
// touching the record, so the setup form can be unlocked client-side.
func (d *DentistService) VerifyOtp(ctx context.Context, request request_models.VerifyOtpRequest) (*response_models.AccountResponse, error) {
	user, err := d.lookupPending(ctx, request.Email, request.Otp)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(user), nil
}

// SetupPassword is the only transition from passwordless to credentialed: it
// hashes the password, clears both OTP fields so the code cannot be reused,
// and issues a session.
func (d *DentistService) SetupPassword(ctx context.Context, request request_models.SetupPasswordRequest) (string, *response_models.AccountResponse, error) {
	user, err := d.lookupPending(ctx, request.Email, request.Otp)
	if err != nil {
		return "", nil, err
	}
	if len(request.Password) < 6 {
		return "", nil, utils.ErrWeakPassword
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return "", nil, utils.ErrDatabaseError
	}

	user.PasswordHash = &hashed
	user.OtpCode = nil
	user.OtpExpiresAt = nil

	if err := d.userRepo.Update(ctx, user); err != nil {
		return "", nil, utils.ErrDatabaseError
	}

	token, err := utils.CreateSessionToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return "", nil, utils.ErrDatabaseError
	}

	return token, toAccountResponse(user), nil
}

// ResendOtp replaces any pending code with a fresh one. Two concurrent
// resends race and the last write wins; the earlier code stops validating.
func (d *DentistService) ResendOtp(ctx context.Context, actingRole db_models.UserRole, id string) (*response_models.ProvisionResponse, error) {
	if actingRole != db_models.RoleAdmin {
		return nil, utils.ErrForbidden
	}

	user, err := d.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || user.Role != db_models.RoleDoctor {
		return nil, utils.ErrDentistNotFound
	}
	if user.PasswordHash != nil {
		return nil, utils.ErrOtpAlreadyUsed
	}

	otp, err := utils.GenerateOtpCode()
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	expiry := time.Now().Add(otpLifetime).Unix()
	user.OtpCode = &otp
	user.OtpExpiresAt = &expiry

	if err := d.userRepo.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	emailSent := true
	if err := d.mailService.SendPasswordSetupMail(user.Email, user.Name, otp); err != nil {
		log.Printf("setup mail to %s failed: %v", user.Email, err)
		emailSent = false
	}

	return d.provisionResponse(user, otp, emailSent), nil
}

func (d *DentistService) ListDentists(ctx context.Context) ([]response_models.DentistResponse, error) {
	users, err := d.userRepo.ListByRole(ctx, db_models.RoleDoctor)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.DentistResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toDentistResponse(&users[i]))
	}
	return responses, nil
}

func (d *DentistService) GetDentist(ctx context.Context, id string) (*response_models.DentistResponse, error) {
	user, err := d.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || user.Role != db_models.RoleDoctor {
		return nil, utils.ErrDentistNotFound
	}
	resp := toDentistResponse(user)
	return &resp, nil
}

func (d *DentistService) UpdateDentist(ctx context.Context, actingRole db_models.UserRole, id string, request request_models.UpdateDentistProfileRequest) error {
	if actingRole != db_models.RoleAdmin {
		return utils.ErrForbidden
	}

	user, err := d.userRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil || user.Role != db_models.RoleDoctor {
		return utils.ErrDentistNotFound
	}

	if request.Name != nil {
		user.Name = *request.Name
	}
	if request.Active != nil {
		user.Active = *request.Active
	}
	if user.Profile == nil && (request.Specialty != nil || request.Phone != nil || request.Bio != nil) {
		user.Profile = &db_models.DentistProfile{UserID: user.ID}
	}
	if request.Specialty != nil {
		user.Profile.Specialty = *request.Specialty
	}
	if request.Phone != nil {
		user.Profile.Phone = *request.Phone
	}
	if request.Bio != nil {
		user.Profile.Bio = *request.Bio
	}

	if err := d.userRepo.Update(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (d *DentistService) DeleteDentist(ctx context.Context, actingRole db_models.UserRole, id string) error {
	if actingRole != db_models.RoleAdmin {
		return utils.ErrForbidden
	}

	user, err := d.userRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil || user.Role != db_models.RoleDoctor {
		return utils.ErrDentistNotFound
	}

	if err := d.userRepo.Delete(ctx, user.ID); err != nil {
		return utils.ErrDatabaseError
	}

	// Courtesy note; the removal has already happened, so delivery is
	// best-effort like the invite mail.
	body := fmt.Sprintf("Hi %s, your access to the clinic back office has been removed. Contact the administrator if this is unexpected.", user.Name)
	if err := d.mailService.SendNotifyMail(user.Email, "Your account has been removed", body); err != nil {
		log.Printf("removal notice to %s failed: %v", user.Email, err)
	}
	return nil
}

// lookupPending applies the shared OTP validation: the pair must match a
// DOCTOR account, the account must be active, the code unexpired, and the
// account still passwordless (a credentialed account never re-enters the
// OTP path).
func (d *DentistService) lookupPending(ctx context.Context, email, otp string) (*db_models.User, error) {
	user, err := d.userRepo.FindByEmailAndOtp(ctx, email, otp, db_models.RoleDoctor)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || user.PasswordHash != nil {
		return nil, utils.ErrOtpNotFound
	}
	if user.OtpExpiresAt == nil || *user.OtpExpiresAt < time.Now().Unix() {
		return nil, utils.ErrOtpExpired
	}
	if !user.Active {
		return nil, utils.ErrAccountInactive
	}
	return user, nil
}

func (d *DentistService) newPendingDentist(name, email string) (*db_models.User, string, error) {
	otp, err := utils.GenerateOtpCode()
	if err != nil {
		return nil, "", utils.ErrDatabaseError
	}
	expiry := time.Now().Add(otpLifetime).Unix()

	return &db_models.User{
		Name:         name,
		Email:        email,
		Role:         db_models.RoleDoctor,
		Active:       true,
		OtpCode:      &otp,
		OtpExpiresAt: &expiry,
	}, otp, nil
}

func (d *DentistService) provisionResponse(user *db_models.User, otp string, emailSent bool) *response_models.ProvisionResponse {
	resp := &response_models.ProvisionResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		EmailSent: emailSent,
	}
	// Expose the code outside production so staging can finish onboarding
	// without a mailbox.
	if d.env != "production" {
		resp.Otp = otp
	}
	return resp
}

func toDentistResponse(user *db_models.User) response_models.DentistResponse {
	resp := response_models.DentistResponse{
		ID:           user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		Active:       user.Active,
		PendingSetup: user.PasswordHash == nil,
	}
	if user.Profile != nil {
		resp.Specialty = user.Profile.Specialty
		resp.Phone = user.Profile.Phone
		resp.Bio = user.Profile.Bio
	}
	return resp
}
