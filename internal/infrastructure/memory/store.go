// Package memory fournit une implémentation en mémoire des ports de
// persistance. Elle sert aux tests des cas d'usage : mêmes contrats que les
// adaptateurs PostgreSQL, sans base. Run exécute le callback sur les mêmes
// données partagées, sans rollback en cas d'échec.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/ports"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/finance"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// Store contient toutes les collections en mémoire.
type Store struct {
	mu sync.Mutex

	products     map[string]*entity.Product
	clients      map[string]*entity.Client
	movements    []*entity.StockMovement
	receptions   map[string]*entity.Reception
	invoices     map[string]*entity.Invoice
	invoiceLines map[string][]*entity.InvoiceLine
	payments     map[string]*entity.Payment
	bordereaux   map[string]*entity.Bordereau
	contracts    map[string]*entity.Contract
	closures     map[int]*entity.AnnualClosure
	stockLines   []*entity.ClosureStockLine
	balanceLines []*entity.ClosureBalanceLine
	records      map[string]*entity.CancellationRecord
	recordLines  []*entity.CancellationLine
	sequences    map[string]int
	users        map[string]*entity.User
}

// NewStore construit un magasin vide.
func NewStore() *Store {
	return &Store{
		products:     map[string]*entity.Product{},
		clients:      map[string]*entity.Client{},
		receptions:   map[string]*entity.Reception{},
		invoices:     map[string]*entity.Invoice{},
		invoiceLines: map[string][]*entity.InvoiceLine{},
		payments:     map[string]*entity.Payment{},
		bordereaux:   map[string]*entity.Bordereau{},
		contracts:    map[string]*entity.Contract{},
		closures:     map[int]*entity.AnnualClosure{},
		records:      map[string]*entity.CancellationRecord{},
		sequences:    map[string]int{},
		users:        map[string]*entity.User{},
	}
}

// Repos retourne le lot de répertoires partageant ce magasin.
func (s *Store) Repos() ports.TxRepos {
	return ports.TxRepos{
		Products:   &productRepo{s},
		Movements:  &movementRepo{s},
		Receptions: &receptionRepo{s},
		Invoices:   &invoiceRepo{s},
		Clients:    &clientRepo{s},
		Payments:   &paymentRepo{s},
		Contracts:  &contractRepo{s},
		Closures:   &closureRepo{s},
		Journal:    &journalRepo{s},
		Sequences:  &sequenceRepo{s},
	}
}

// Run exécute fn sur les répertoires partagés. Pas de rollback simulé.
func (s *Store) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	return fn(s.Repos())
}

// Users retourne le répertoire des opérateurs.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// ─── Produits ────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

var _ repository.ProductRepository = (*productRepo)(nil)

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) HasChildren(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Active && p.ParentStockID != nil && *p.ParentStockID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *productRepo) List(activeOnly bool) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *productRepo) Patch(id string, patch entity.ProductPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Unit != nil {
		p.Unit = *patch.Unit
	}
	if patch.PrixCatalogue != nil {
		p.PrixCatalogue = *patch.PrixCatalogue
	}
	if patch.PrixRevient != nil {
		p.PrixRevient = *patch.PrixRevient
	}
	if patch.TauxTVA != nil {
		p.TauxTVA = *patch.TauxTVA
	}
	if patch.ParentStockID != nil {
		p.ParentStockID = patch.ParentStockID
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *productRepo) UpdateStock(id string, stock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockActuel = stock
	return nil
}

func (r *productRepo) ResetAllStocks() error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		p.StockActuel = p.StockInitial
	}
	return nil
}

// ─── Livre des mouvements ────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

var _ repository.MovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *movementRepo) ListByProduct(productID string, limit int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *movementRepo) SumByProduct(productID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

func (r *movementRepo) DeleteByDocument(documentID, kind string) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []*entity.StockMovement
	var deleted []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.DocumentID == documentID && m.Kind == kind {
			deleted = append(deleted, m)
		} else {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return deleted, nil
}

func (r *movementRepo) DeleteAll() error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = nil
	return nil
}

func (r *movementRepo) CountAll() (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.movements), nil
}

// ─── Réceptions ──────────────────────────────────────────────────────────────

type receptionRepo struct{ s *Store }

var _ repository.ReceptionRepository = (*receptionRepo)(nil)

func (r *receptionRepo) Create(rec *entity.Reception) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rec
	r.s.receptions[rec.ID] = &cp
	return nil
}

func (r *receptionRepo) GetByID(id string) (*entity.Reception, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.receptions[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *receptionRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.receptions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.receptions, id)
	return nil
}

func (r *receptionRepo) List(limit int) ([]*entity.Reception, error) {
	all, err := r.ListOnStock()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *receptionRepo) ListOnStock() ([]*entity.Reception, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Reception
	for _, rec := range r.s.receptions {
		if rec.Destination == entity.DestinationSurStock {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ─── Factures et avoirs ──────────────────────────────────────────────────────

type invoiceRepo struct{ s *Store }

var _ repository.InvoiceRepository = (*invoiceRepo)(nil)

func (r *invoiceRepo) Create(inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[inv.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *invoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *line
	r.s.invoiceLines[line.InvoiceID] = append(r.s.invoiceLines[line.InvoiceID], &cp)
	return nil
}

func (r *invoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *invoiceRepo) GetLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InvoiceLine
	for _, l := range r.s.invoiceLines[invoiceID] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *invoiceRepo) DeleteLines(invoiceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invoiceLines, invoiceID)
	return nil
}

func (r *invoiceRepo) List(clientID string, limit int) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if clientID != "" && inv.ClientID != clientID {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *invoiceRepo) UpdateTotals(id string, totals finance.Totals, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.TotalHT = totals.HT
	inv.TotalTVA = totals.TVA
	inv.TotalTTC = totals.TTC
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *invoiceRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *invoiceRepo) UpdateCreditStatus(id, creditStatus string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.CreditStatus = creditStatus
	return nil
}

func (r *invoiceRepo) ZeroOut(id, motif string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.TotalHT = decimal.Zero
	inv.TotalTVA = decimal.Zero
	inv.TotalTTC = decimal.Zero
	inv.Status = entity.StatusAnnulee
	inv.CancelMotif = motif
	inv.UpdatedAt = updatedAt
	for _, l := range r.s.invoiceLines[id] {
		l.Quantity = decimal.Zero
		l.MontantHT = decimal.Zero
	}
	return nil
}

func (r *invoiceRepo) SumCreditNotesTTC(originInvoiceID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, inv := range r.s.invoices {
		if inv.Type == entity.DocAvoir && inv.Status != entity.StatusAnnulee &&
			inv.OriginInvoiceID != nil && *inv.OriginInvoiceID == originInvoiceID {
			sum = sum.Add(inv.TotalTTC)
		}
	}
	return sum, nil
}

func (r *invoiceRepo) SumTTCByClientAfterYear(clientID, docType string, afterYear int) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, inv := range r.s.invoices {
		if inv.ClientID == clientID && inv.Type == docType &&
			inv.Status != entity.StatusAnnulee && inv.Date.Year() > afterYear {
			sum = sum.Add(inv.TotalTTC)
		}
	}
	return sum, nil
}

func (r *invoiceRepo) SumTTCByClientInYear(clientID, docType string, year int) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, inv := range r.s.invoices {
		if inv.ClientID == clientID && inv.Type == docType &&
			inv.Status != entity.StatusAnnulee && inv.Date.Year() == year {
			sum = sum.Add(inv.TotalTTC)
		}
	}
	return sum, nil
}

func (r *invoiceRepo) ListReplayableLines() ([]*repository.ReplayableLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*repository.ReplayableLine
	for id, inv := range r.s.invoices {
		if inv.Status == entity.StatusAnnulee {
			continue
		}
		for _, l := range r.s.invoiceLines[id] {
			out = append(out, &repository.ReplayableLine{
				InvoiceID:   inv.ID,
				InvoiceType: inv.Type,
				Number:      inv.Number,
				ProductID:   l.ProductID,
				Quantity:    l.Quantity,
				Date:        inv.Date,
				CreatedAt:   inv.CreatedAt,
				Actor:       inv.CreatedBy,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ─── Clients ─────────────────────────────────────────────────────────────────

type clientRepo struct{ s *Store }

var _ repository.ClientRepository = (*clientRepo)(nil)

func (r *clientRepo) Create(c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[c.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *clientRepo) GetByID(id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *clientRepo) List(activeOnly bool) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.s.clients {
		if activeOnly && !c.Active {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *clientRepo) Patch(id string, patch entity.ClientPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.NIF != nil {
		c.NIF = *patch.NIF
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.SeuilCredit != nil {
		c.SeuilCredit = *patch.SeuilCredit
	}
	if patch.Active != nil {
		c.Active = *patch.Active
	}
	c.UpdatedAt = time.Now()
	return nil
}

func (r *clientRepo) UpdateSoldeCache(id string, solde decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.SoldeCourant = solde
	return nil
}

func (r *clientRepo) UpdateReportANouveau(id string, montant decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.ReportANouveau = montant
	return nil
}

// ─── Règlements ──────────────────────────────────────────────────────────────

type paymentRepo struct{ s *Store }

var _ repository.PaymentRepository = (*paymentRepo)(nil)

func (r *paymentRepo) Create(p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.payments[p.ID] = &cp
	return nil
}

func (r *paymentRepo) GetByID(id string) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *paymentRepo) ListByClient(clientID string, limit int) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.ClientID == clientID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *paymentRepo) SumByClientAfterYear(clientID string, afterYear int) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, p := range r.s.payments {
		if p.ClientID == clientID && p.Date.Year() > afterYear {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *paymentRepo) SumByClientInYear(clientID string, year int) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, p := range r.s.payments {
		if p.ClientID == clientID && p.Date.Year() == year {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *paymentRepo) CreateBordereau(b *entity.Bordereau) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *b
	r.s.bordereaux[b.ID] = &cp
	return nil
}

func (r *paymentRepo) AttachToBordereau(bordereauID string, paymentIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range paymentIDs {
		p, ok := r.s.payments[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.BordereauID = &bordereauID
		p.Status = entity.PaymentEncaisse
	}
	return nil
}

// ─── Contrats ────────────────────────────────────────────────────────────────

type contractRepo struct{ s *Store }

var _ repository.ContractRepository = (*contractRepo)(nil)

func (r *contractRepo) Create(c *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.contracts[c.ID] = &cp
	return nil
}

func (r *contractRepo) GetByID(id string) (*entity.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contracts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *contractRepo) ListByClient(clientID string) ([]*entity.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Contract
	for _, c := range r.s.contracts {
		if c.ClientID == clientID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ─── Clôtures ────────────────────────────────────────────────────────────────

type closureRepo struct{ s *Store }

var _ repository.ClosureRepository = (*closureRepo)(nil)

func (r *closureRepo) Create(c *entity.AnnualClosure) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.closures[c.Year]; ok {
		return domain.ErrAlreadyClosed
	}
	cp := *c
	r.s.closures[c.Year] = &cp
	return nil
}

func (r *closureRepo) CreateStockLine(l *entity.ClosureStockLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.stockLines = append(r.s.stockLines, &cp)
	return nil
}

func (r *closureRepo) CreateBalanceLine(l *entity.ClosureBalanceLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.balanceLines = append(r.s.balanceLines, &cp)
	return nil
}

func (r *closureRepo) GetByYear(year int) (*entity.AnnualClosure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.closures[year]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *closureRepo) LatestYear() (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	latest := 0
	for year := range r.s.closures {
		if year > latest {
			latest = year
		}
	}
	return latest, nil
}

// ─── Journal des annulations ─────────────────────────────────────────────────

type journalRepo struct{ s *Store }

var _ repository.JournalRepository = (*journalRepo)(nil)

func (r *journalRepo) CreateRecord(rec *entity.CancellationRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rec
	r.s.records[rec.ID] = &cp
	return nil
}

func (r *journalRepo) CreateLine(l *entity.CancellationLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.recordLines = append(r.s.recordLines, &cp)
	return nil
}

func (r *journalRepo) ListByInvoice(invoiceID string) ([]*entity.CancellationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CancellationRecord
	for _, rec := range r.s.records {
		if rec.InvoiceID == invoiceID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ─── Numérotation ────────────────────────────────────────────────────────────

type sequenceRepo struct{ s *Store }

var _ repository.SequenceRepository = (*sequenceRepo)(nil)

func (r *sequenceRepo) Next(docType string, year int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := fmt.Sprintf("%s/%d", docType, year)
	r.s.sequences[key]++
	return r.s.sequences[key], nil
}

// ─── Opérateurs ──────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *userRepo) GetByUsername(username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
