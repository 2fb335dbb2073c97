package util

//*******************************************
// optional value
//*******************************************

type Optional[T any] struct {
	Value T
	valid bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, valid: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{valid: false}
}

func (self Optional[T]) HasValue() bool {
	return self.valid
}
