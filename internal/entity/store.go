package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their API names rather than Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Store is the gorm-backed Client for one record type.
type Store[T any] struct {
	db     *gorm.DB
	name   string
	schema *schema.Schema
}

// NewStore parses T's schema once so that field names in predicates, sorts
// and updates can be checked before they reach SQL.
func NewStore[T any](db *gorm.DB, name string) (*Store[T], error) {
	sch, err := schema.Parse(new(T), &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s schema: %w", name, err)
	}
	return &Store[T]{db: db, name: name, schema: sch}, nil
}

// MustStore is NewStore for package-level wiring where a schema error is a
// programming mistake.
func MustStore[T any](db *gorm.DB, name string) *Store[T] {
	s, err := NewStore[T](db, name)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the entity name used in errors and cache keys.
func (s *Store[T]) Name() string {
	return s.name
}

func (s *Store[T]) Create(ctx context.Context, rec *T) (*T, error) {
	if rec == nil {
		return nil, ValidationError(s.name, "record is required", nil)
	}
	if err := validate.StructCtx(ctx, rec); err != nil {
		return nil, validationFailure(s.name, err)
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, s.translate(err, "")
	}
	return rec, nil
}

func (s *Store[T]) Update(ctx context.Context, id string, fields Fields) (*T, error) {
	cols, err := s.columns(fields)
	if err != nil {
		return nil, err
	}
	if _, ok := cols["id"]; ok {
		return nil, ValidationError(s.name, "id cannot be updated", nil)
	}

	tx := s.db.WithContext(ctx)
	var current T
	if err := tx.First(&current, "id = ?", id).Error; err != nil {
		return nil, s.translate(err, id)
	}

	if len(cols) > 0 {
		if err := s.validateMerged(ctx, current, fields); err != nil {
			return nil, err
		}
		if err := tx.Model(&current).Updates(cols).Error; err != nil {
			return nil, s.translate(err, id)
		}
	}

	return s.Get(ctx, id)
}

func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	var rec T
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, s.translate(err, id)
	}
	return &rec, nil
}

func (s *Store[T]) Filter(ctx context.Context, pred Fields, sortBy string) ([]T, error) {
	where, err := s.columns(pred)
	if err != nil {
		return nil, err
	}
	order, err := s.orderBy(sortBy)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(new(T))
	if len(where) > 0 {
		q = q.Where(where)
	}
	for _, o := range order {
		q = q.Order(o)
	}

	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, s.translate(err, "")
	}
	return out, nil
}

func (s *Store[T]) List(ctx context.Context, sortBy string) ([]T, error) {
	return s.Filter(ctx, nil, sortBy)
}

// columns maps API field names onto column names, rejecting unknown ones.
func (s *Store[T]) columns(fields Fields) (map[string]interface{}, error) {
	cols := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		f := s.schema.LookUpField(name)
		if f == nil || f.DBName == "" {
			return nil, ValidationError(s.name, fmt.Sprintf("unknown field %q", name), nil)
		}
		cols[f.DBName] = value
	}
	return cols, nil
}

// orderBy turns "field" / "-field" into ORDER BY clauses. Insertion order
// breaks ties and is the default.
func (s *Store[T]) orderBy(sortBy string) ([]clause.OrderByColumn, error) {
	insertion := clause.OrderByColumn{Column: clause.Column{Name: "created_date"}}
	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" {
		return []clause.OrderByColumn{insertion}, nil
	}

	desc := strings.HasPrefix(sortBy, "-")
	name := strings.TrimPrefix(sortBy, "-")
	f := s.schema.LookUpField(name)
	if f == nil || f.DBName == "" {
		return nil, ValidationError(s.name, fmt.Sprintf("unknown sort field %q", name), nil)
	}
	primary := clause.OrderByColumn{Column: clause.Column{Name: f.DBName}, Desc: desc}
	if f.DBName == "created_date" {
		return []clause.OrderByColumn{primary}, nil
	}
	return []clause.OrderByColumn{primary, insertion}, nil
}

// validateMerged checks that current with fields applied still satisfies
// the record's validation tags.
func (s *Store[T]) validateMerged(ctx context.Context, current T, fields Fields) error {
	overlay := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		f := s.schema.LookUpField(name)
		key := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if key == "" || key == "-" {
			key = f.Name
		}
		overlay[key] = value
	}

	raw, err := json.Marshal(overlay)
	if err != nil {
		return ValidationError(s.name, "invalid field values", err)
	}
	merged := current
	if err := json.Unmarshal(raw, &merged); err != nil {
		return ValidationError(s.name, "invalid field values", err)
	}
	if err := validate.StructCtx(ctx, &merged); err != nil {
		return validationFailure(s.name, err)
	}
	return nil
}

func validationFailure(entity string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationError(entity, "invalid record", err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	sort.Strings(problems)
	return ValidationError(entity, "missing or invalid fields: "+strings.Join(problems, ", "), err)
}

func (s *Store[T]) translate(err error, id string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFoundError(s.name, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ValidationError(s.name, "duplicate value for a unique field", err)
	default:
		return TransportError(s.name, "store operation failed", err)
	}
}

// Validate checks rec against its struct tags the same way Create does.
func Validate(entity string, rec interface{}) error {
	if err := validate.Struct(rec); err != nil {
		return validationFailure(entity, err)
	}
	return nil
}
