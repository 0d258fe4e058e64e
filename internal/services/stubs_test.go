package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"smilecare/internal/models/db_models"
	"smilecare/internal/repositories"
)

// In-memory doubles for the repository and mail interfaces. They assign ids
// on insert the way the gorm hooks would, so services see realistic records.

type stubUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*db_models.User

	failNext bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*db_models.User)}
}

func (s *stubUserRepo) fail() error {
	if s.failNext {
		s.failNext = false
		return errors.New("storage down")
	}
	return nil
}

func (s *stubUserRepo) Insert(ctx context.Context, user *db_models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUserRepo) InsertWithProfile(ctx context.Context, user *db_models.User, profile *db_models.DentistProfile) error {
	if err := s.Insert(ctx, user); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	profile.UserID = user.ID
	stored := s.users[user.ID]
	copied := *profile
	stored.Profile = &copied
	return nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *db_models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	if _, ok := s.users[user.ID]; !ok {
		return errors.New("no such user")
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *stubUserRepo) HardDeleteWithProfile(ctx context.Context, id uuid.UUID) error {
	return s.Delete(context.Background(), id)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*db_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	user, ok := s.users[parsed]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) FindByEmailAndOtp(ctx context.Context, email, otp string, role db_models.UserRole) (*db_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email && user.Role == role && user.OtpCode != nil && *user.OtpCode == otp {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) ListByRole(ctx context.Context, role db_models.UserRole) ([]db_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db_models.User
	for _, user := range s.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (s *stubUserRepo) CountByRole(ctx context.Context, role db_models.UserRole) (int64, error) {
	users, _ := s.ListByRole(ctx, role)
	return int64(len(users)), nil
}

type sentMail struct {
	To      string
	Otp     string
	Token   string
	Subject string
}

type stubMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	failNext bool
	failAll  bool
}

func (m *stubMailer) shouldFail() bool {
	if m.failAll {
		return true
	}
	if m.failNext {
		m.failNext = false
		return true
	}
	return false
}

func (m *stubMailer) SendPasswordSetupMail(to, name, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail() {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, sentMail{To: to, Otp: otp})
	return nil
}

func (m *stubMailer) SendPasswordResetMail(to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail() {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, sentMail{To: to, Token: token})
	return nil
}

func (m *stubMailer) SendNotifyMail(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail() {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject})
	return nil
}

func (m *stubMailer) lastOtp() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].Otp != "" {
			return m.sent[i].Otp
		}
	}
	return ""
}

type stubServiceRepo struct {
	mu       sync.Mutex
	services map[uuid.UUID]*db_models.Service
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{services: make(map[uuid.UUID]*db_models.Service)}
}

func (s *stubServiceRepo) add(name string, price int64) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.services[id] = &db_models.Service{
		BaseModel: db_models.BaseModel{ID: id},
		Name:      name,
		Price:     price,
		Active:    true,
	}
	return id
}

func (s *stubServiceRepo) Insert(ctx context.Context, service *db_models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	copied := *service
	s.services[service.ID] = &copied
	return nil
}

func (s *stubServiceRepo) Update(ctx context.Context, service *db_models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *service
	s.services[service.ID] = &copied
	return nil
}

func (s *stubServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.services, id)
	return nil
}

func (s *stubServiceRepo) FindByID(ctx context.Context, id string) (*db_models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	service, ok := s.services[parsed]
	if !ok {
		return nil, nil
	}
	copied := *service
	return &copied, nil
}

func (s *stubServiceRepo) FindByName(ctx context.Context, name string) (*db_models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, service := range s.services {
		if service.Name == name {
			copied := *service
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubServiceRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db_models.Service
	for _, id := range ids {
		if service, ok := s.services[id]; ok {
			out = append(out, *service)
		}
	}
	return out, nil
}

func (s *stubServiceRepo) List(ctx context.Context, activeOnly bool) ([]db_models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db_models.Service
	for _, service := range s.services {
		if activeOnly && !service.Active {
			continue
		}
		out = append(out, *service)
	}
	return out, nil
}

type stubVisitRepo struct {
	mu     sync.Mutex
	visits map[uuid.UUID]*db_models.Visit

	inserts int
	updates int
}

func newStubVisitRepo() *stubVisitRepo {
	return &stubVisitRepo{visits: make(map[uuid.UUID]*db_models.Visit)}
}

func (s *stubVisitRepo) Insert(ctx context.Context, visit *db_models.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if visit.ID == uuid.Nil {
		visit.ID = uuid.New()
	}
	for i := range visit.Items {
		if visit.Items[i].ID == uuid.Nil {
			visit.Items[i].ID = uuid.New()
		}
		visit.Items[i].VisitID = visit.ID
	}
	copied := cloneVisit(visit)
	s.visits[visit.ID] = copied
	s.inserts++
	return nil
}

func (s *stubVisitRepo) UpdateReplacingItems(ctx context.Context, visit *db_models.Visit, replaceItems bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.visits[visit.ID]
	if !ok {
		return errors.New("no such visit")
	}
	items := stored.Items
	copied := cloneVisit(visit)
	if !replaceItems {
		copied.Items = items
	} else {
		for i := range copied.Items {
			if copied.Items[i].ID == uuid.Nil {
				copied.Items[i].ID = uuid.New()
			}
			copied.Items[i].VisitID = visit.ID
		}
	}
	s.visits[visit.ID] = copied
	s.updates++
	return nil
}

func (s *stubVisitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.visits, id)
	return nil
}

func (s *stubVisitRepo) FindByID(ctx context.Context, id string) (*db_models.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	visit, ok := s.visits[parsed]
	if !ok {
		return nil, nil
	}
	return cloneVisit(visit), nil
}

func (s *stubVisitRepo) List(ctx context.Context, filter repositories.VisitFilter) ([]db_models.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db_models.Visit
	for _, visit := range s.visits {
		if filter.DoctorScope != nil {
			assigned := visit.DoctorID != nil && *visit.DoctorID == *filter.DoctorScope
			if visit.CreatedByID != *filter.DoctorScope && !assigned {
				continue
			}
		}
		if filter.From > 0 && visit.VisitDate < filter.From {
			continue
		}
		if filter.To > 0 && visit.VisitDate > filter.To {
			continue
		}
		if filter.Paid != nil && visit.Paid != *filter.Paid {
			continue
		}
		out = append(out, *cloneVisit(visit))
	}
	return out, nil
}

func cloneVisit(visit *db_models.Visit) *db_models.Visit {
	copied := *visit
	copied.Items = append([]db_models.VisitItem(nil), visit.Items...)
	return &copied
}

type stubReportRepo struct {
	visits []db_models.Visit
}

func (s *stubReportRepo) inRange(from, to int64) []db_models.Visit {
	var out []db_models.Visit
	for _, visit := range s.visits {
		if visit.VisitDate >= from && visit.VisitDate <= to {
			out = append(out, visit)
		}
	}
	return out
}

func (s *stubReportRepo) CountVisits(ctx context.Context, from, to int64) (int64, error) {
	return int64(len(s.inRange(from, to))), nil
}

func (s *stubReportRepo) SumRevenue(ctx context.Context, from, to int64) (int64, error) {
	var sum int64
	for _, visit := range s.inRange(from, to) {
		sum += visit.Total
	}
	return sum, nil
}

func (s *stubReportRepo) CountUnpaidVisits(ctx context.Context, from, to int64) (int64, error) {
	var count int64
	for _, visit := range s.inRange(from, to) {
		if !visit.Paid {
			count++
		}
	}
	return count, nil
}

func (s *stubReportRepo) RevenueByDoctor(ctx context.Context, from, to int64) ([]repositories.DoctorRevenueRow, error) {
	rows := make(map[string]*repositories.DoctorRevenueRow)
	for _, visit := range s.inRange(from, to) {
		if visit.DoctorID == nil {
			continue
		}
		key := visit.DoctorID.String()
		row, ok := rows[key]
		if !ok {
			row = &repositories.DoctorRevenueRow{DoctorID: key}
			if visit.Doctor != nil {
				row.DoctorName = visit.Doctor.Name
			}
			rows[key] = row
		}
		row.Visits++
		row.Revenue += visit.Total
	}
	out := make([]repositories.DoctorRevenueRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubReportRepo) ListVisitsForExport(ctx context.Context, from, to int64) ([]db_models.Visit, error) {
	return s.inRange(from, to), nil
}

func unixDaysAgo(days int) int64 {
	return time.Now().AddDate(0, 0, -days).Unix()
}
