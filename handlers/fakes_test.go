package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"CRIART_GO/database"
	"CRIART_GO/models"
)

var errFake = errors.New("falha simulada")

type fakeStore struct {
	mu        sync.Mutex
	cobrancas map[string]*models.PixCobranca
	createErr error
	updates   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{cobrancas: map[string]*models.PixCobranca{}}
}

func (s *fakeStore) Create(_ context.Context, c *models.PixCobranca) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	cp := *c
	s.cobrancas[c.ID] = &cp
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*models.PixCobranca, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cobrancas[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeStore) GetByTxID(_ context.Context, txid string) (*models.PixCobranca, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cobrancas {
		if c.TxID == txid {
			cp := *c
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) List(_ context.Context, limit, offset int) ([]models.PixCobranca, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.PixCobranca{}
	for _, c := range s.cobrancas {
		out = append(out, *c)
	}
	if offset >= len(out) {
		return []models.PixCobranca{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, txid, status string, paidAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cobrancas {
		if c.TxID == txid {
			c.Status = status
			if paidAt != nil {
				c.DataPago = paidAt
			}
			s.updates = append(s.updates, txid+":"+status)
			return nil
		}
	}
	return database.ErrNotFound
}

func (s *fakeStore) ListPending(_ context.Context, origem string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var txids []string
	for _, c := range s.cobrancas {
		if c.Origem == origem && c.Status == models.StatusAtiva {
			txids = append(txids, c.TxID)
		}
	}
	return txids, nil
}

func (s *fakeStore) status(txid string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cobrancas {
		if c.TxID == txid {
			return c.Status
		}
	}
	return ""
}

// fakeEfi responde as chamadas do SDK com funções configuráveis
type fakeEfi struct {
	CreateFunc func(body map[string]interface{}) (string, error)
	DetailFunc func(txid string) (string, error)
}

func (f *fakeEfi) CreateImmediateCharge(body map[string]interface{}) (string, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(body)
	}
	return "", errFake
}

func (f *fakeEfi) DetailCharge(txid string) (string, error) {
	if f.DetailFunc != nil {
		return f.DetailFunc(txid)
	}
	return "", errFake
}

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	if f.users == nil {
		f.users = map[string]*models.User{}
	}
	f.users[u.Email] = u
	return nil
}

type fakeImages struct {
	data   map[string][]byte
	getErr error
	sets   int
}

func (f *fakeImages) Get(_ context.Context, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	png, ok := f.data[key]
	return png, ok, nil
}

func (f *fakeImages) Set(_ context.Context, key string, png []byte) error {
	if f.data == nil {
		f.data = map[string][]byte{}
	}
	f.data[key] = png
	f.sets++
	return nil
}
