package shared

import "context"

// Lister fetches the unfiltered set one page at a time.
type Lister[T any] interface {
	List(ctx context.Context, page, limit int) (Page[T], error)
}

// Filterer fetches the subset matching criteria one page at a time.
type Filterer[T, F any] interface {
	Filter(ctx context.Context, criteria F, page, limit int) (Page[T], error)
}

// Getter fetches one record by ID.
type Getter[T any] interface {
	Get(ctx context.Context, id int64) (T, error)
}

// Writer persists records. Update carries only the keys that changed; a nil
// value clears the field on the server.
type Writer[T, Form any] interface {
	Create(ctx context.Context, form Form) (T, error)
	Update(ctx context.Context, id int64, changes map[string]any) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Repository is the full remote CRUD surface of one entity.
type Repository[T, F, Form any] interface {
	Lister[T]
	Filterer[T, F]
	Getter[T]
	Writer[T, Form]
}
