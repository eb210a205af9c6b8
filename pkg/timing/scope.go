package timing

// Time runs fn as one attempt under key. End is deferred, so the attempt is
// closed on every exit path, including panic unwind.
func (r *Recorder) Time(key string, fn func() error) error {
	r.Begin(key)
	defer func() { _ = r.End(key) }()
	return fn()
}

// Func returns a wrapper that times every invocation of fn under key.
func Func(r *Recorder, key string, fn func()) func() {
	return func() {
		r.Begin(key)
		defer func() { _ = r.End(key) }()
		fn()
	}
}

// FuncErr is Func for callables that return an error.
func FuncErr(r *Recorder, key string, fn func() error) func() error {
	return func() error {
		return r.Time(key, fn)
	}
}

// FuncVal is Func for callables that produce a value.
func FuncVal[T any](r *Recorder, key string, fn func() (T, error)) func() (T, error) {
	return func() (T, error) {
		r.Begin(key)
		defer func() { _ = r.End(key) }()
		return fn()
	}
}
