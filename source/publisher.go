package source

// Publisher is one of the supported broadcaster platforms.
type Publisher string

const (
	ARD     Publisher = "ard"
	Arte    Publisher = "arte"
	ZDF     Publisher = "zdf"
	SRF     Publisher = "srf"
	DreiSat Publisher = "3sat"
)

var publisherNames = map[Publisher]string{
	ARD:     "ARD",
	Arte:    "Arte",
	ZDF:     "ZDF",
	SRF:     "SRF",
	DreiSat: "3sat",
}

// Publishers returns every supported publisher in a stable order.
func Publishers() []Publisher {
	return []Publisher{ARD, Arte, ZDF, SRF, DreiSat}
}

// Name returns the display name.
func (p Publisher) Name() string {
	if name, ok := publisherNames[p]; ok {
		return name
	}
	return string(p)
}

// Valid reports whether p is a known publisher.
func (p Publisher) Valid() bool {
	_, ok := publisherNames[p]
	return ok
}

func (p Publisher) String() string {
	return string(p)
}

// ParsePublisher maps a lowercase id to a Publisher.
func ParsePublisher(s string) (Publisher, error) {
	p := Publisher(s)
	if !p.Valid() {
		return "", Fail(SchemeError, s, "unknown publisher %q", s)
	}
	return p, nil
}

// Kind distinguishes addressable record types.
type Kind string

const (
	KindItem    Kind = "item"
	KindProgram Kind = "program"
)

// ParseKind maps a lowercase kind to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindItem, KindProgram:
		return Kind(s), nil
	default:
		return "", Fail(SchemeError, s, "unknown type %q", s)
	}
}

func (k Kind) String() string {
	return string(k)
}
