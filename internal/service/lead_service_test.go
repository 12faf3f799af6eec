package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/repository"
	"github.com/atelier-vn/shop-api/internal/service"
	"github.com/atelier-vn/shop-api/internal/testutil"
)

func createLeadService(db *gorm.DB) *service.LeadService {
	return service.NewLeadService(
		repository.NewLeadRepository(db),
		repository.NewCustomerRepository(db),
		zap.NewNop(),
	)
}

func TestLeadService_CreateDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createLeadService(db)
	ctx := context.Background()

	lead, err := svc.CreateLead(ctx, &domain.CreateLeadRequest{Name: "Anh Minh"})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadSourceOther, lead.Source)
	assert.Equal(t, domain.LeadStatusReminder, lead.Status)
}

func TestLeadService_UpdateInvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createLeadService(db)
	ctx := context.Background()

	lead, err := svc.CreateLead(ctx, &domain.CreateLeadRequest{Name: "Anh Minh"})
	require.NoError(t, err)

	bad := domain.LeadStatus("NOT_A_STATUS")
	_, err = svc.UpdateLead(ctx, lead.ID, &domain.UpdateLeadRequest{Status: &bad})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestLeadService_AddActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createLeadService(db)
	ctx := context.Background()

	lead, err := svc.CreateLead(ctx, &domain.CreateLeadRequest{Name: "Anh Minh"})
	require.NoError(t, err)

	activity, err := svc.AddActivity(ctx, lead.ID, nil, &domain.AddLeadActivityRequest{
		Type:    domain.ActivityTypeCall,
		Content: "Called about the bag, will send photos",
	})
	require.NoError(t, err)
	assert.Equal(t, lead.ID, activity.LeadID)
	assert.Equal(t, domain.ActivityTypeCall, activity.Type)

	detail, err := svc.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	require.Len(t, detail.Activities, 1)
	assert.Equal(t, activity.ID, detail.Activities[0].ID)
}

func TestLeadService_AddActivityInvalidType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createLeadService(db)
	ctx := context.Background()

	lead, err := svc.CreateLead(ctx, &domain.CreateLeadRequest{Name: "Anh Minh"})
	require.NoError(t, err)

	_, err = svc.AddActivity(ctx, lead.ID, nil, &domain.AddLeadActivityRequest{
		Type:    domain.ActivityType("FAX"),
		Content: "n/a",
	})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestLeadService_AddActivityUnknownLead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createLeadService(db)

	_, err := svc.AddActivity(context.Background(), uuid.New(), nil, &domain.AddLeadActivityRequest{
		Type:    domain.ActivityTypeNote,
		Content: "n/a",
	})
	assert.ErrorIs(t, err, service.ErrLeadNotFound)
}

func TestLeadService_ConvertToCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createLeadService(db)
	ctx := context.Background()

	lead, err := svc.CreateLead(ctx, &domain.CreateLeadRequest{
		Name:  "Anh Minh",
		Phone: "0901112233",
		Email: "minh@example.com",
		Notes: "Louis Vuitton wallet",
	})
	require.NoError(t, err)

	customer, err := svc.ConvertToCustomer(ctx, lead.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, lead.Name, customer.Name)
	assert.Equal(t, lead.Phone, customer.Phone)
	assert.Equal(t, lead.Email, customer.Email)
	require.NotNil(t, customer.LeadID)
	assert.Equal(t, lead.ID, *customer.LeadID)
}

func TestLeadService_ConvertOverrides(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createLeadService(db)
	ctx := context.Background()

	lead, err := svc.CreateLead(ctx, &domain.CreateLeadRequest{Name: "Anh Minh", Phone: "0901112233"})
	require.NoError(t, err)

	customer, err := svc.ConvertToCustomer(ctx, lead.ID, &domain.ConvertLeadRequest{
		Name:    "Nguyễn Văn Minh",
		Address: "45 Lê Lợi, Quận 1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn Minh", customer.Name)
	assert.Equal(t, "45 Lê Lợi, Quận 1", customer.Address)
	// fields not overridden come from the lead
	assert.Equal(t, lead.Phone, customer.Phone)
}

func TestLeadService_ConvertTwice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createLeadService(db)
	ctx := context.Background()

	lead, err := svc.CreateLead(ctx, &domain.CreateLeadRequest{Name: "Anh Minh"})
	require.NoError(t, err)

	_, err = svc.ConvertToCustomer(ctx, lead.ID, nil)
	require.NoError(t, err)

	_, err = svc.ConvertToCustomer(ctx, lead.ID, nil)
	assert.ErrorIs(t, err, service.ErrLeadAlreadyConverted)
}

func TestLeadService_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createLeadService(db)
	ctx := context.Background()

	_, err := svc.CreateLead(ctx, &domain.CreateLeadRequest{Name: "Facebook lead", Source: domain.LeadSourceFacebook})
	require.NoError(t, err)
	_, err = svc.CreateLead(ctx, &domain.CreateLeadRequest{Name: "Zalo lead", Source: domain.LeadSourceZalo})
	require.NoError(t, err)

	leads, pagination, err := svc.ListLeads(ctx, service.LeadListFilter{Source: string(domain.LeadSourceZalo)})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Zalo lead", leads[0].Name)
	assert.Equal(t, int64(1), pagination.Total)
}
