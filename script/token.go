package script

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokLParen
	tokRParen
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokComma
	tokGt
	tokGte
	tokLt
	tokLte
	tokEqEq
	tokNeq
)

type token struct {
	kind tokenKind
	text string
	num  float64
	col  int
}

var functionArity = map[string]int{
	"ABS": 1, "MIN": 2, "MAX": 2, "CLAMP": 3,
	"ATAN2": 2, "ANGLE_DIFF": 2, "NORMALIZE_ANGLE": 1,
}

const (
	constPI  = "PI"
	constTAU = "TAU"
)
