package behavior

// First keeps the strongest spec. It fails on an empty list.
func First[S any](specs []S) (S, error) {
	var zero S
	if len(specs) == 0 {
		return zero, errNoSpecs
	}
	return specs[0], nil
}

// Last keeps the weakest spec.
func Last[S any](specs []S) (S, error) {
	var zero S
	if len(specs) == 0 {
		return zero, errNoSpecs
	}
	return specs[len(specs)-1], nil
}

// AnyTrue reports whether any contribution is true.
func AnyTrue(specs []bool) (bool, error) {
	for _, spec := range specs {
		if spec {
			return true, nil
		}
	}
	return false, nil
}

// AllTrue reports whether every contribution is true; an empty list is true.
func AllTrue(specs []bool) (bool, error) {
	for _, spec := range specs {
		if !spec {
			return false, nil
		}
	}
	return true, nil
}

// Concat flattens slice specs, strongest first.
func Concat[E any](specs [][]E) ([]E, error) {
	out := []E{}
	for _, spec := range specs {
		out = append(out, spec...)
	}
	return out, nil
}
