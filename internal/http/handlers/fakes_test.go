package handlers_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"productstudio/internal/domain"
	"productstudio/internal/imagegen"
)

type memoryProducts struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
}

func newMemoryProducts(products ...domain.Product) *memoryProducts {
	m := &memoryProducts{products: make(map[int64]*domain.Product)}
	for i := range products {
		p := products[i]
		m.products[p.SKU] = &p
	}
	return m
}

func (m *memoryProducts) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.products)
}

func (m *memoryProducts) FindBySKU(ctx context.Context, sku int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[sku]
	if !ok {
		return nil, fmt.Errorf("%w: sku %d", domain.ErrNotFound, sku)
	}
	cp := *p
	return &cp, nil
}

func (m *memoryProducts) ApplySlot(ctx context.Context, sku int64, slot domain.Slot, value string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[sku]
	if !ok {
		return nil, fmt.Errorf("%w: sku %d", domain.ErrNotFound, sku)
	}
	if err := p.SetSlot(slot, value); err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (m *memoryProducts) MarkFulfilled(ctx context.Context, sku int64, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[sku]
	if !ok || p.Status == domain.ProductStatusFulfilled || !p.Complete() {
		return false, nil
	}
	p.Status = domain.ProductStatusFulfilled
	p.CreatedAt = at
	return true, nil
}

func (m *memoryProducts) MarkPending(ctx context.Context, sku int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[sku]
	if !ok || p.Status != "" {
		return false, nil
	}
	p.Status = domain.ProductStatusPending
	return true, nil
}

type memoryHistory struct {
	mu      sync.Mutex
	entries []domain.GenerationLog
	err     error
}

func (h *memoryHistory) Append(ctx context.Context, e *domain.GenerationLog) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.entries = append(h.entries, *e)
	return nil
}

func (h *memoryHistory) ListRecent(ctx context.Context, limit int) ([]domain.GenerationLog, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := append([]domain.GenerationLog(nil), h.entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeGenerator struct {
	mu          sync.Mutex
	imageCalls  int
	textCalls   int
	lastRef     *imagegen.Reference
	image       *imagegen.Image
	imageErr    error
	description string
	textErr     error
	// onImage runs inside GenerateImage while the request is still open.
	onImage func()
}

func (g *fakeGenerator) GenerateImage(ctx context.Context, prompt string, ref *imagegen.Reference) (*imagegen.Image, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.imageCalls++
	g.lastRef = ref
	if g.onImage != nil {
		g.onImage()
	}
	if g.imageErr != nil {
		return nil, g.imageErr
	}
	return g.image, nil
}

func (g *fakeGenerator) GenerateDescription(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.textCalls++
	if g.textErr != nil {
		return "", g.textErr
	}
	return g.description, nil
}
