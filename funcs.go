package rx

// The free functions take the pattern first and compile it through the
// shared pattern cache. They return the *CompileError of an invalid pattern
// instead of panicking.

// IsMatch reports whether text contains any match of pattern.
func IsMatch(pattern, text string, opts ...Option) (bool, error) {
	re, err := cached(pattern, opts)
	if err != nil {
		return false, err
	}
	return re.IsMatch(text), nil
}

// IndexOf returns the character index of the first match of pattern in text.
func IndexOf(pattern, text string, opts ...Option) (int, bool, error) {
	re, err := cached(pattern, opts)
	if err != nil {
		return -1, false, err
	}
	i, ok := re.IndexOf(text)
	return i, ok, nil
}

// FirstMatch returns the text of the first match of pattern in text.
func FirstMatch(pattern, text string, opts ...Option) (string, bool, error) {
	re, err := cached(pattern, opts)
	if err != nil {
		return "", false, err
	}
	s, ok := re.FirstMatch(text)
	return s, ok, nil
}

// FirstMatchDetails returns the first match of pattern in text.
func FirstMatchDetails(pattern, text string, opts ...Option) (Match, bool, error) {
	re, err := cached(pattern, opts)
	if err != nil {
		return Match{}, false, err
	}
	m, ok := re.FirstMatchDetails(text)
	return m, ok, nil
}

// Matches returns the text of every match of pattern in text.
func Matches(pattern, text string, opts ...Option) ([]string, error) {
	re, err := cached(pattern, opts)
	if err != nil {
		return nil, err
	}
	return re.Matches(text), nil
}

// MatchesDetails returns every match of pattern in text.
func MatchesDetails(pattern, text string, opts ...Option) ([]Match, error) {
	re, err := cached(pattern, opts)
	if err != nil {
		return nil, err
	}
	return re.MatchesDetails(text), nil
}

// Split slices text around the matches of pattern.
func Split(pattern, text string, opts ...Option) ([]string, error) {
	re, err := cached(pattern, opts)
	if err != nil {
		return nil, err
	}
	return re.Split(text), nil
}

// Replace replaces every match of pattern with template.
func Replace(pattern, text, template string, opts ...Option) (string, error) {
	re, err := cached(pattern, opts)
	if err != nil {
		return "", err
	}
	return re.Replace(text, template), nil
}

// ReplaceFunc replaces the matches of pattern with the result of fn.
func ReplaceFunc(pattern, text string, fn func(string) (string, bool), opts ...Option) (string, error) {
	re, err := cached(pattern, opts)
	if err != nil {
		return "", err
	}
	return re.ReplaceFunc(text, fn), nil
}

// ReplaceMatchFunc replaces the matches of pattern with the result of fn.
func ReplaceMatchFunc(pattern, text string, fn func(Match) (string, bool), opts ...Option) (string, error) {
	re, err := cached(pattern, opts)
	if err != nil {
		return "", err
	}
	return re.ReplaceMatchFunc(text, fn), nil
}
