package util

//*******************************************
// flags
//*******************************************

type _FlagEntry[T any] struct {
	value   T
	version int32
}

// Node/edge annotation storage for graph algorithms.
//
// Entries are lazily reset to the default value on the first Get after
// a Reset, so clearing between runs is O(1).
type Flags[T any] struct {
	entries  Array[_FlagEntry[T]]
	version  int32
	_default T
}

func NewFlags[T any](size int32, _default T) Flags[T] {
	return Flags[T]{
		entries:  NewArray[_FlagEntry[T]](int(size)),
		version:  1,
		_default: _default,
	}
}

// Returns a mutable reference valid until the next Reset.
func (self *Flags[T]) Get(id int32) *T {
	entry := &self.entries[id]
	if entry.version != self.version {
		entry.value = self._default
		entry.version = self.version
	}
	return &entry.value
}

func (self *Flags[T]) Reset() {
	self.version += 1
}

func (self *Flags[T]) Length() int {
	return self.entries.Length()
}
