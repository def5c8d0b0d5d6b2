package customer

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/relojeria-api/internal/application/dto"
	"github.com/jhoicas/relojeria-api/internal/domain"
	"github.com/jhoicas/relojeria-api/internal/domain/entity"
	"github.com/jhoicas/relojeria-api/internal/domain/repository"
)

// UseCase casos de uso CRUD de clientes.
type UseCase struct {
	repo repository.CustomerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CustomerRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create crea un cliente. Email y teléfono son únicos.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	if strings.TrimSpace(in.Name) == "" || in.Email == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetByEmail(in.Email); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, _ := uc.repo.GetByPhone(in.Phone); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get obtiene un cliente por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Search lista clientes por nombre, insensible a tildes y mayúsculas
// ("Muñoz" y "munoz" encuentran lo mismo). Query vacío lista todos.
func (uc *UseCase) Search(ctx context.Context, query string, limit, offset int) ([]*entity.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.repo.Search(NormalizeQuery(query), limit, offset)
}

// Update edita datos de contacto. Los campos derivados (netValue, purchases,
// serviceCount) nunca se editan por esta vía: solo los muta el agregador.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Name = *in.Name
	}
	if in.Email != nil && *in.Email != c.Email {
		if existing, _ := uc.repo.GetByEmail(*in.Email); existing != nil {
			return nil, domain.ErrDuplicate
		}
		c.Email = *in.Email
	}
	if in.Phone != nil && *in.Phone != c.Phone {
		if existing, _ := uc.repo.GetByPhone(*in.Phone); existing != nil {
			return nil, domain.ErrDuplicate
		}
		c.Phone = *in.Phone
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete elimina un cliente solo si ninguna venta ni servicio lo referencia;
// de lo contrario devuelve ErrConflict.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	sales, services, err := uc.repo.CountReferences(id)
	if err != nil {
		return err
	}
	if sales > 0 || services > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeQuery pasa el término de búsqueda a minúsculas sin marcas
// diacríticas, para comparar contra la columna normalizada.
func NormalizeQuery(q string) string {
	out, _, err := transform.String(stripAccents, strings.ToLower(strings.TrimSpace(q)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(q))
	}
	return out
}
