package services

import (
	"context"

	"github.com/google/uuid"

	"smilecare/internal/models/db_models"
	"smilecare/internal/models/request_models"
	"smilecare/internal/models/response_models"
	"smilecare/internal/repositories"
	"smilecare/pkg/utils"
)

// Actor is the authenticated user a billing call runs as. Services apply the
// role policy themselves rather than trusting that middleware ran.
type Actor struct {
	ID   uuid.UUID
	Role db_models.UserRole
}

// PricedItem is a resolved line: catalog lines carry the looked-up price,
// custom lines their own.
type PricedItem struct {
	ServiceID *uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
}

// ComputeTotals prices a visit deterministically. Total is the raw
// difference and may be negative under a heavy discount; display layers
// clamp, the data layer does not.
func ComputeTotals(items []PricedItem, discount int64) (price int64, total int64) {
	for _, item := range items {
		price += item.UnitPrice * int64(item.Quantity)
	}
	return price, price - discount
}

type BillingServiceInterface interface {
	CreateVisit(ctx context.Context, actor Actor, request request_models.CreateVisitRequest) (*response_models.VisitResponse, error)
	UpdateVisit(ctx context.Context, actor Actor, id string, request request_models.UpdateVisitRequest) (*response_models.VisitResponse, error)
	GetVisit(ctx context.Context, actor Actor, id string) (*response_models.VisitResponse, error)
	ListVisits(ctx context.Context, actor Actor, filter repositories.VisitFilter) ([]response_models.VisitResponse, error)
	DeleteVisit(ctx context.Context, actor Actor, id string) error
}

type BillingService struct {
	visitRepo   repositories.VisitRepository
	serviceRepo repositories.ServiceRepository
}

func NewBillingService(visitRepo repositories.VisitRepository, serviceRepo repositories.ServiceRepository) BillingServiceInterface {
	return &BillingService{
		visitRepo:   visitRepo,
		serviceRepo: serviceRepo,
	}
}

func (b *BillingService) CreateVisit(ctx context.Context, actor Actor, request request_models.CreateVisitRequest) (*response_models.VisitResponse, error) {
	if err := checkBillingRole(actor); err != nil {
		return nil, err
	}
	if request.Discount < 0 {
		return nil, utils.ErrInvalidDiscount
	}

	priced, err := b.priceItems(ctx, request.Items)
	if err != nil {
		return nil, err
	}
	price, total := ComputeTotals(priced, request.Discount)

	visit := &db_models.Visit{
		PatientName:   request.PatientName,
		VisitDate:     request.VisitDate,
		CreatedByID:   actor.ID,
		Price:         price,
		Discount:      request.Discount,
		Total:         total,
		PaymentMethod: request.PaymentMethod,
		Paid:          request.Paid,
		Notes:         request.Notes,
		Items:         toVisitItems(priced),
	}

	if request.DoctorID != nil {
		doctorID, parseErr := uuid.Parse(*request.DoctorID)
		if parseErr != nil {
			return nil, utils.ErrInvalidInput
		}
		visit.DoctorID = &doctorID
	} else if actor.Role == db_models.RoleDoctor {
		doctorID := actor.ID
		visit.DoctorID = &doctorID
	}

	if err := b.visitRepo.Insert(ctx, visit); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toVisitResponse(visit)
	return &resp, nil
}

// UpdateVisit recomputes and replaces line items only when the request edits
// items or discount; otherwise the persisted price/discount/total are left
// untouched.
func (b *BillingService) UpdateVisit(ctx context.Context, actor Actor, id string, request request_models.UpdateVisitRequest) (*response_models.VisitResponse, error) {
	visit, err := b.loadOwnedVisit(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if request.PatientName != nil {
		visit.PatientName = *request.PatientName
	}
	if request.VisitDate != nil {
		visit.VisitDate = *request.VisitDate
	}
	if request.PaymentMethod != nil {
		visit.PaymentMethod = *request.PaymentMethod
	}
	if request.Paid != nil {
		visit.Paid = *request.Paid
	}
	if request.Notes != nil {
		visit.Notes = *request.Notes
	}
	if request.DoctorID != nil {
		doctorID, parseErr := uuid.Parse(*request.DoctorID)
		if parseErr != nil {
			return nil, utils.ErrInvalidInput
		}
		visit.DoctorID = &doctorID
	}

	recompute := request.Items != nil || request.Discount != nil
	if recompute {
		discount := visit.Discount
		if request.Discount != nil {
			discount = *request.Discount
		}
		if discount < 0 {
			return nil, utils.ErrInvalidDiscount
		}

		inputs := itemsAsInputs(visit.Items)
		if request.Items != nil {
			inputs = *request.Items
		}

		// Catalog lines are re-resolved against the current catalog, so a
		// price change since creation flows into the recomputed total.
		priced, priceErr := b.priceItems(ctx, inputs)
		if priceErr != nil {
			return nil, priceErr
		}

		price, total := ComputeTotals(priced, discount)
		visit.Price = price
		visit.Discount = discount
		visit.Total = total
		visit.Items = toVisitItems(priced)
	}

	if err := b.visitRepo.UpdateReplacingItems(ctx, visit, recompute); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toVisitResponse(visit)
	return &resp, nil
}

func (b *BillingService) GetVisit(ctx context.Context, actor Actor, id string) (*response_models.VisitResponse, error) {
	visit, err := b.loadOwnedVisit(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := toVisitResponse(visit)
	return &resp, nil
}

func (b *BillingService) ListVisits(ctx context.Context, actor Actor, filter repositories.VisitFilter) ([]response_models.VisitResponse, error) {
	if err := checkBillingRole(actor); err != nil {
		return nil, err
	}
	if actor.Role == db_models.RoleDoctor {
		scope := actor.ID
		filter.DoctorScope = &scope
	}

	visits, err := b.visitRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.VisitResponse, 0, len(visits))
	for i := range visits {
		responses = append(responses, toVisitResponse(&visits[i]))
	}
	return responses, nil
}

func (b *BillingService) DeleteVisit(ctx context.Context, actor Actor, id string) error {
	visit, err := b.loadOwnedVisit(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := b.visitRepo.Delete(ctx, visit.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// priceItems validates and resolves line items. Catalog references are
// resolved in one batched lookup at computation time (no snapshot on the
// input side); unknown ids, missing custom prices and non-positive
// quantities all fail before anything is persisted.
func (b *BillingService) priceItems(ctx context.Context, inputs []request_models.VisitItemInput) ([]PricedItem, error) {
	if len(inputs) == 0 {
		return nil, utils.ErrInvalidInput
	}

	catalogIDs := make([]uuid.UUID, 0, len(inputs))
	for _, input := range inputs {
		if input.Quantity < 1 {
			return nil, utils.ErrInvalidQuantity
		}
		if input.ServiceID != nil {
			serviceID, err := uuid.Parse(*input.ServiceID)
			if err != nil {
				return nil, utils.ErrServiceNotFound
			}
			catalogIDs = append(catalogIDs, serviceID)
			continue
		}
		if input.UnitPrice == nil {
			return nil, utils.ErrMissingCustomPrice
		}
		if input.Name == "" {
			return nil, utils.ErrInvalidInput
		}
	}

	catalog := make(map[uuid.UUID]db_models.Service, len(catalogIDs))
	if len(catalogIDs) > 0 {
		services, err := b.serviceRepo.FindByIDs(ctx, catalogIDs)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		for _, service := range services {
			catalog[service.ID] = service
		}
	}

	priced := make([]PricedItem, 0, len(inputs))
	for _, input := range inputs {
		if input.ServiceID != nil {
			serviceID, _ := uuid.Parse(*input.ServiceID)
			service, ok := catalog[serviceID]
			if !ok {
				return nil, utils.ErrServiceNotFound
			}
			id := serviceID
			priced = append(priced, PricedItem{
				ServiceID: &id,
				Name:      service.Name,
				UnitPrice: service.Price,
				Quantity:  input.Quantity,
			})
			continue
		}
		priced = append(priced, PricedItem{
			Name:      input.Name,
			UnitPrice: *input.UnitPrice,
			Quantity:  input.Quantity,
		})
	}
	return priced, nil
}

// loadOwnedVisit fetches a visit and applies the visibility rule: admins see
// everything, a doctor only what they created or are assigned to.
func (b *BillingService) loadOwnedVisit(ctx context.Context, actor Actor, id string) (*db_models.Visit, error) {
	if err := checkBillingRole(actor); err != nil {
		return nil, err
	}

	visit, err := b.visitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if visit == nil {
		return nil, utils.ErrVisitNotFound
	}

	if actor.Role == db_models.RoleDoctor {
		assigned := visit.DoctorID != nil && *visit.DoctorID == actor.ID
		if visit.CreatedByID != actor.ID && !assigned {
			return nil, utils.ErrForbidden
		}
	}
	return visit, nil
}

func checkBillingRole(actor Actor) error {
	if actor.Role != db_models.RoleAdmin && actor.Role != db_models.RoleDoctor {
		return utils.ErrForbidden
	}
	return nil
}

func itemsAsInputs(items []db_models.VisitItem) []request_models.VisitItemInput {
	inputs := make([]request_models.VisitItemInput, 0, len(items))
	for _, item := range items {
		input := request_models.VisitItemInput{
			Name:     item.Name,
			Quantity: item.Quantity,
		}
		if item.ServiceID != nil {
			id := item.ServiceID.String()
			input.ServiceID = &id
		} else {
			price := item.UnitPrice
			input.UnitPrice = &price
		}
		inputs = append(inputs, input)
	}
	return inputs
}

func toVisitItems(priced []PricedItem) []db_models.VisitItem {
	items := make([]db_models.VisitItem, 0, len(priced))
	for _, p := range priced {
		items = append(items, db_models.VisitItem{
			ServiceID: p.ServiceID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Quantity:  p.Quantity,
		})
	}
	return items
}

func toVisitResponse(visit *db_models.Visit) response_models.VisitResponse {
	items := make([]response_models.VisitItemResponse, 0, len(visit.Items))
	for _, item := range visit.Items {
		itemResp := response_models.VisitItemResponse{
			ID:        item.ID.String(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
		if item.ServiceID != nil {
			itemResp.ServiceID = item.ServiceID.String()
		}
		items = append(items, itemResp)
	}

	resp := response_models.VisitResponse{
		ID:            visit.ID.String(),
		PatientName:   visit.PatientName,
		VisitDate:     visit.VisitDate,
		CreatedByID:   visit.CreatedByID.String(),
		Price:         visit.Price,
		Discount:      visit.Discount,
		Total:         visit.Total,
		TotalDue:      visit.Total,
		PaymentMethod: visit.PaymentMethod,
		Paid:          visit.Paid,
		Notes:         visit.Notes,
		Items:         items,
	}
	if resp.TotalDue < 0 {
		resp.TotalDue = 0
	}
	if visit.DoctorID != nil {
		resp.DoctorID = visit.DoctorID.String()
	}
	if visit.Doctor != nil {
		resp.DoctorName = visit.Doctor.Name
	}
	return resp
}
