package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"hibiscus/internal/models/db_models"
)

// NewMemoryStore returns a process-local store. Native ids are UUIDs, like
// the postgres backend. Data does not survive a restart.
func NewMemoryStore() *Store {
	return &Store{
		Tours:     &memoryTourRepository{},
		Inquiries: &memoryInquiryRepository{byID: map[string]db_models.Inquiry{}},
		Admin:     &memoryAdminRepository{},
		Images:    &memoryImageRepository{byID: map[string]db_models.Image{}},
		Close:     func(context.Context) error { return nil },
	}
}

func memoryNativeID(key string) (string, error) {
	id, err := parseNativeID(key)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type memoryTourRepository struct {
	mu    sync.RWMutex
	tours []db_models.Tour
}

func (r *memoryTourRepository) indexOf(kind KeyKind, key string) (int, error) {
	if kind == ByNativeID {
		id, err := memoryNativeID(key)
		if err != nil {
			return -1, err
		}
		key = id
	}
	for i := range r.tours {
		if kind == ByCustomID && r.tours[i].CustomID != "" && r.tours[i].CustomID == key {
			return i, nil
		}
		if kind == ByNativeID && r.tours[i].NativeID == key {
			return i, nil
		}
	}
	return -1, nil
}

func (r *memoryTourRepository) customIDTaken(id string) bool {
	if id == "" {
		return false
	}
	for i := range r.tours {
		if r.tours[i].CustomID == id {
			return true
		}
	}
	return false
}

func (r *memoryTourRepository) FindAll(_ context.Context) ([]db_models.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tours := make([]db_models.Tour, 0, len(r.tours))
	for _, t := range r.tours {
		tours = append(tours, t.Clone())
	}
	return tours, nil
}

func (r *memoryTourRepository) FindOne(_ context.Context, kind KeyKind, key string) (*db_models.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, err := r.indexOf(kind, key)
	if err != nil || i < 0 {
		return nil, err
	}
	tour := r.tours[i].Clone()
	return &tour, nil
}

func (r *memoryTourRepository) Insert(_ context.Context, tour *db_models.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.customIDTaken(tour.CustomID) {
		return ErrDuplicateKey
	}
	tour.NativeID = uuid.NewString()
	r.tours = append(r.tours, tour.Clone())
	return nil
}

func (r *memoryTourRepository) InsertMany(_ context.Context, tours []db_models.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range tours {
		if r.customIDTaken(tours[i].CustomID) {
			continue
		}
		tours[i].NativeID = uuid.NewString()
		r.tours = append(r.tours, tours[i].Clone())
	}
	return nil
}

func (r *memoryTourRepository) Update(_ context.Context, kind KeyKind, key string, patch db_models.TourPatch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.indexOf(kind, key)
	if err != nil || i < 0 {
		return false, err
	}
	patch.Apply(&r.tours[i])
	return true, nil
}

func (r *memoryTourRepository) Delete(_ context.Context, kind KeyKind, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.indexOf(kind, key)
	if err != nil || i < 0 {
		return false, err
	}
	r.tours = append(r.tours[:i], r.tours[i+1:]...)
	return true, nil
}

type memoryInquiryRepository struct {
	mu   sync.RWMutex
	byID map[string]db_models.Inquiry
}

func (r *memoryInquiryRepository) FindAll(_ context.Context) ([]db_models.Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inquiries := make([]db_models.Inquiry, 0, len(r.byID))
	for _, inq := range r.byID {
		inquiries = append(inquiries, inq)
	}
	sort.SliceStable(inquiries, func(i, j int) bool {
		return inquiries[i].Date.After(inquiries[j].Date)
	})
	return inquiries, nil
}

func (r *memoryInquiryRepository) Insert(_ context.Context, inquiry *db_models.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inquiry.NativeID = uuid.NewString()
	r.byID[inquiry.NativeID] = *inquiry
	return nil
}

func (r *memoryInquiryRepository) SetStatus(_ context.Context, id string, status string) (bool, error) {
	key, err := memoryNativeID(id)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	inq, ok := r.byID[key]
	if !ok {
		return false, nil
	}
	inq.Status = status
	r.byID[key] = inq
	return true, nil
}

func (r *memoryInquiryRepository) Delete(_ context.Context, id string) (bool, error) {
	key, err := memoryNativeID(id)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[key]; !ok {
		return false, nil
	}
	delete(r.byID, key)
	return true, nil
}

type memoryAdminRepository struct {
	mu    sync.Mutex
	admin *db_models.AdminCredential
}

func (r *memoryAdminRepository) Get(_ context.Context) (*db_models.AdminCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.admin == nil {
		return nil, nil
	}
	admin := *r.admin
	return &admin, nil
}

func (r *memoryAdminRepository) Create(_ context.Context, admin *db_models.AdminCredential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin.NativeID = uuid.NewString()
	stored := *admin
	r.admin = &stored
	return nil
}

func (r *memoryAdminRepository) SetPasswordVersion(_ context.Context, id string, version int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.admin != nil && r.admin.NativeID == id {
		r.admin.PasswordVersion = version
	}
	return nil
}

func (r *memoryAdminRepository) ResetCredentials(_ context.Context, username, password string, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.admin == nil {
		r.admin = &db_models.AdminCredential{NativeID: uuid.NewString(), CreatedAt: at}
	}
	r.admin.Username = username
	r.admin.Password = password
	r.admin.PasswordVersion++
	r.admin.UpdatedAt = at
	return r.admin.PasswordVersion, nil
}

type memoryImageRepository struct {
	mu   sync.RWMutex
	byID map[string]db_models.Image
}

func (r *memoryImageRepository) Insert(_ context.Context, image *db_models.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	image.NativeID = uuid.NewString()
	r.byID[image.NativeID] = *image
	return nil
}

func (r *memoryImageRepository) FindByID(_ context.Context, id string) (*db_models.Image, error) {
	key, err := memoryNativeID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	image, ok := r.byID[key]
	if !ok {
		return nil, nil
	}
	return &image, nil
}

func (r *memoryImageRepository) FindUploadedBefore(_ context.Context, cutoff time.Time) ([]db_models.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var images []db_models.Image
	for _, image := range r.byID {
		if image.UploadedAt.Before(cutoff) {
			image.Data = ""
			images = append(images, image)
		}
	}
	return images, nil
}

func (r *memoryImageRepository) Delete(_ context.Context, id string) (bool, error) {
	key, err := memoryNativeID(id)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[key]; !ok {
		return false, nil
	}
	delete(r.byID, key)
	return true, nil
}
