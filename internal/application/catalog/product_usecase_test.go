package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/catalog"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProductCreate_InitialiseLeStock(t *testing.T) {
	store := memory.NewStore()
	uc := catalog.NewProductUseCase(store.Repos().Products)

	p, err := uc.Create(context.Background(), catalog.CreateProductInput{
		Name:          "Ciment CPJ 42.5",
		Unit:          "tonne",
		PrixCatalogue: d("1000"),
		TauxTVA:       d("19"),
		StockInitial:  d("80"),
	})
	require.NoError(t, err)
	assert.True(t, p.StockActuel.Equal(d("80")))
	assert.True(t, p.Active)
}

func TestProductCreate_ParentInconnu(t *testing.T) {
	store := memory.NewStore()
	uc := catalog.NewProductUseCase(store.Repos().Products)

	parent := "absent"
	_, err := uc.Create(context.Background(), catalog.CreateProductInput{
		Name:          "Sac 50kg",
		PrixCatalogue: d("500"),
		ParentStockID: &parent,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestProductCreate_PasDeChaineEnfantEnfant(t *testing.T) {
	store := memory.NewStore()
	uc := catalog.NewProductUseCase(store.Repos().Products)
	ctx := context.Background()

	racine, err := uc.Create(ctx, catalog.CreateProductInput{Name: "Vrac", PrixCatalogue: d("900")})
	require.NoError(t, err)
	enfant, err := uc.Create(ctx, catalog.CreateProductInput{
		Name: "Sac 50kg", PrixCatalogue: d("950"), ParentStockID: &racine.ID,
	})
	require.NoError(t, err)

	// Un enfant ne peut pas servir de parent de stock.
	_, err = uc.Create(ctx, catalog.CreateProductInput{
		Name: "Sac 25kg", PrixCatalogue: d("480"), ParentStockID: &enfant.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductPatch_RefuseLAutoReference(t *testing.T) {
	store := memory.NewStore()
	uc := catalog.NewProductUseCase(store.Repos().Products)
	ctx := context.Background()

	p, err := uc.Create(ctx, catalog.CreateProductInput{Name: "Vrac", PrixCatalogue: d("900")})
	require.NoError(t, err)

	err = uc.Patch(ctx, p.ID, entity.ProductPatch{ParentStockID: &p.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDeactivate_SuppressionLogique(t *testing.T) {
	store := memory.NewStore()
	uc := catalog.NewProductUseCase(store.Repos().Products)
	ctx := context.Background()

	p, err := uc.Create(ctx, catalog.CreateProductInput{Name: "Vrac", PrixCatalogue: d("900")})
	require.NoError(t, err)
	require.NoError(t, uc.Deactivate(ctx, p.ID))

	// Toujours lisible, mais hors liste des actifs.
	got, err := uc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	actifs, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, actifs)
}

func TestClientCreate_EtPatchSeuil(t *testing.T) {
	store := memory.NewStore()
	uc := catalog.NewClientUseCase(store.Repos().Clients)
	ctx := context.Background()

	c, err := uc.Create(ctx, catalog.CreateClientInput{
		Name:        "SARL Aurès Construction",
		NIF:         "099912345678901",
		SeuilCredit: d("10000"),
	})
	require.NoError(t, err)
	assert.True(t, c.Active)

	negatif := d("-1")
	err = uc.Patch(ctx, c.ID, entity.ClientPatch{SeuilCredit: &negatif})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	nouveau := d("25000")
	require.NoError(t, uc.Patch(ctx, c.ID, entity.ClientPatch{SeuilCredit: &nouveau}))
	got, err := uc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.SeuilCredit.Equal(nouveau))
}

func TestClientGet_Introuvable(t *testing.T) {
	store := memory.NewStore()
	uc := catalog.NewClientUseCase(store.Repos().Clients)

	_, err := uc.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
