package employee

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeRepo mirrors the Postgres repo in memory, including the unique
// constraints on employee_id and email.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[string]Employee
	hashes map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]Employee), hashes: make(map[string]string)}
}

func (r *fakeRepo) Create(_ context.Context, e Employee, passwordHash string) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.EmployeeID == e.EmployeeID || existing.Email == e.Email {
			return Employee{}, ErrDuplicate
		}
	}
	r.nextID++
	e.ID = fmt.Sprintf("emp-%d", r.nextID)
	e.CreatedAt = time.Now()
	r.rows[e.ID] = e
	r.hashes[e.ID] = passwordHash
	return e, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (Employee, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.rows {
		if e.Email == email {
			return e, r.hashes[id], nil
		}
	}
	return Employee{}, "", ErrNotFound
}

func (r *fakeRepo) List(_ context.Context) ([]Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Employee
	for _, e := range r.rows {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, id string, upd Update) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	for otherID, other := range r.rows {
		if otherID != id && other.Email == upd.Email {
			return Employee{}, ErrDuplicate
		}
	}
	e.Name, e.Email, e.Department, e.Position = upd.Name, upd.Email, upd.Department, upd.Position
	r.rows[id] = e
	return e, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	delete(r.hashes, id)
	return nil
}

func reg(code, email string) Registration {
	return Registration{
		EmployeeID: code,
		Name:       "Ada Lovelace",
		Email:      email,
		Password:   "s3cret-pass",
		Department: "Engineering",
		Position:   "Engineer",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	emp, err := svc.Register(ctx, reg("E001", "ada@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if emp.ID == "" || emp.EmployeeID != "E001" {
		t.Fatalf("unexpected employee: %+v", emp)
	}

	hash := repo.hashes[emp.ID]
	if hash == "" || hash == "s3cret-pass" {
		t.Fatalf("password stored in the clear or missing: %q", hash)
	}
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, reg("E001", "ada@example.com")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, reg("E002", "ada@example.com")); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate email err = %v, want ErrDuplicate", err)
	}
}

func TestRegisterDuplicateCodeRejected(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, reg("E001", "ada@example.com")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, reg("E001", "grace@example.com")); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate code err = %v, want ErrDuplicate", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, reg("E001", "ada@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	emp, err := svc.Authenticate(ctx, "ada@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if emp.ID != created.ID {
		t.Errorf("authenticated id = %s, want %s", emp.ID, created.ID)
	}

	if _, err := svc.Authenticate(ctx, "ada@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateTouchesProfileFieldsOnly(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, reg("E001", "ada@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(ctx, created.ID, Update{
		Name:       "Ada King",
		Email:      "ada.king@example.com",
		Department: "Research",
		Position:   "Lead",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.EmployeeID != created.EmployeeID {
		t.Errorf("employee code changed by update: %s", updated.EmployeeID)
	}
	if updated.Name != "Ada King" || updated.Email != "ada.king@example.com" || updated.Department != "Research" || updated.Position != "Lead" {
		t.Errorf("profile not updated: %+v", updated)
	}

	// password untouched, old credentials still work
	if _, err := svc.Authenticate(ctx, "ada.king@example.com", "s3cret-pass"); err != nil {
		t.Errorf("authenticate after update: %v", err)
	}
}

func TestUpdateUnknownEmployee(t *testing.T) {
	svc := NewService(newFakeRepo())
	if _, err := svc.Update(context.Background(), "missing", Update{Name: "x", Email: "x@example.com"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, reg("E001", "ada@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}
