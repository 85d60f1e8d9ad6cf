// Package types defines the registry of QuestDB column types and the
// resolution of raw type names reported by the database back into type
// descriptors.
package types

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	questdbconnect "github.com/antoniocaiazzo/questdb-connect"
)

// Kind identifies the abstract storage class of a QuestDB type.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBoolean
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindSymbol
	KindString
	KindVarchar
	KindChar
	KindUUID
	KindDate
	KindTimestamp
	KindLong256
	KindIPv4
	KindGeohashByte
	KindGeohashShort
	KindGeohashInt
	KindGeohashLong
)

// Type describes a QuestDB column type: its database type name and its
// abstract storage class. Types are immutable values; the fixed set is
// populated at package init and geohash types are derived on demand.
type Type struct {
	name string
	kind Kind
}

// The fixed, non-parametrized QuestDB types.
var (
	Boolean   = Type{name: "BOOLEAN", kind: KindBoolean}
	Byte      = Type{name: "BYTE", kind: KindByte}
	Short     = Type{name: "SHORT", kind: KindShort}
	Int       = Type{name: "INT", kind: KindInt}
	Long      = Type{name: "LONG", kind: KindLong}
	Float     = Type{name: "FLOAT", kind: KindFloat}
	Double    = Type{name: "DOUBLE", kind: KindDouble}
	Symbol    = Type{name: "SYMBOL", kind: KindSymbol}
	String    = Type{name: "STRING", kind: KindString}
	Varchar   = Type{name: "VARCHAR", kind: KindVarchar}
	Char      = Type{name: "CHAR", kind: KindChar}
	UUID      = Type{name: "UUID", kind: KindUUID}
	Date      = Type{name: "DATE", kind: KindDate}
	Timestamp = Type{name: "TIMESTAMP", kind: KindTimestamp}
	Long256   = Type{name: "LONG256", kind: KindLong256}
	IPv4      = Type{name: "IPV4", kind: KindIPv4}
)

// registry maps upper-case database type names to their descriptors.
// Geohash names are parametrized and resolved separately.
var registry = map[string]Type{}

func init() {
	for _, t := range Types() {
		registry[t.name] = t
	}
}

// Types returns the fixed type registry, excluding the parametrized
// geohash family.
func Types() []Type {
	return []Type{
		Boolean, Byte, Short, Int, Long, Float, Double,
		Symbol, String, Varchar, Char, UUID, Date, Timestamp,
		Long256, IPv4,
	}
}

// Name returns the database type name, e.g. "DOUBLE" or "GEOHASH(4c)".
func (t Type) Name() string {
	return t.name
}

// Kind returns the abstract storage class.
func (t Type) Kind() Kind {
	return t.kind
}

// Valid reports whether the type is a member of the QuestDB type set.
func (t Type) Valid() bool {
	return t.kind != KindInvalid && t.name != ""
}

// ColumnSpec renders the column definition fragment used inside a
// CREATE TABLE statement, e.g. "'price' DOUBLE".
func (t Type) ColumnSpec(column string) string {
	return "'" + column + "' " + t.name
}

// ScanType returns the Go type a value of this column scans into.
func (t Type) ScanType() reflect.Type {
	switch t.kind {
	case KindBoolean:
		return reflect.TypeOf(false)
	case KindByte:
		return reflect.TypeOf(int8(0))
	case KindShort:
		return reflect.TypeOf(int16(0))
	case KindInt:
		return reflect.TypeOf(int32(0))
	case KindLong:
		return reflect.TypeOf(int64(0))
	case KindFloat:
		return reflect.TypeOf(float32(0))
	case KindDouble:
		return reflect.TypeOf(float64(0))
	case KindDate, KindTimestamp:
		return reflect.TypeOf(time.Time{})
	case KindUUID:
		return reflect.TypeOf(uuid.UUID{})
	default:
		// SYMBOL, STRING, VARCHAR, CHAR, LONG256, IPV4 and the geohash
		// family all travel as text over the wire.
		return reflect.TypeOf("")
	}
}

// GeohashMaxBits is the maximum geohash precision QuestDB supports.
const GeohashMaxBits = 60

// GeohashKind returns the storage class backing a geohash of the given
// precision: up to 7 bits fit a byte, 15 a short, 31 an int, 60 a long.
func GeohashKind(bits int) (Kind, error) {
	switch {
	case bits < 1 || bits > GeohashMaxBits:
		return KindInvalid, questdbconnect.NewConfigError(
			"geohash precision %d must be within [1, %d] bits", bits, GeohashMaxBits)
	case bits <= 7:
		return KindGeohashByte, nil
	case bits <= 15:
		return KindGeohashShort, nil
	case bits <= 31:
		return KindGeohashInt, nil
	default:
		return KindGeohashLong, nil
	}
}

// GeohashTypeName returns the database type name for a geohash of the given
// precision. Precisions on a 5-bit boundary use char notation, e.g.
// "GEOHASH(4c)" for 20 bits; the rest use bit notation, e.g. "GEOHASH(13b)".
func GeohashTypeName(bits int) (string, error) {
	if bits < 1 || bits > GeohashMaxBits {
		return "", questdbconnect.NewConfigError(
			"geohash precision %d must be within [1, %d] bits", bits, GeohashMaxBits)
	}
	if bits%5 == 0 {
		return "GEOHASH(" + strconv.Itoa(bits/5) + "c)", nil
	}
	return "GEOHASH(" + strconv.Itoa(bits) + "b)", nil
}

// Geohash returns the type descriptor for a geohash of the given precision
// in bits.
func Geohash(bits int) (Type, error) {
	kind, err := GeohashKind(bits)
	if err != nil {
		return Type{}, err
	}
	name, err := GeohashTypeName(bits)
	if err != nil {
		return Type{}, err
	}
	return Type{name: name, kind: kind}, nil
}

// ResolveTypeFromName resolves a raw type name, as reported by the
// database's table_columns() function, into a type descriptor. Resolution
// is total over the database's own type set; any other name fails with an
// UnknownTypeError that must surface to the caller.
func ResolveTypeFromName(raw string) (Type, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if t, ok := registry[name]; ok {
		return t, nil
	}
	if strings.HasPrefix(name, "GEOHASH(") && strings.HasSuffix(name, ")") {
		bits, err := parseGeohashBits(name[len("GEOHASH(") : len(name)-1])
		if err != nil {
			return Type{}, questdbconnect.NewUnknownTypeError(raw)
		}
		return Geohash(bits)
	}
	return Type{}, questdbconnect.NewUnknownTypeError(raw)
}

// parseGeohashBits converts a geohash precision literal such as "4c" or
// "21b" into bits. One char of precision is 5 bits.
func parseGeohashBits(prec string) (int, error) {
	if len(prec) < 2 {
		return 0, questdbconnect.NewConfigError("malformed geohash precision %q", prec)
	}
	n, err := strconv.Atoi(prec[:len(prec)-1])
	if err != nil {
		return 0, questdbconnect.NewConfigError("malformed geohash precision %q", prec)
	}
	switch prec[len(prec)-1] {
	case 'C':
		return n * 5, nil
	case 'B':
		return n, nil
	default:
		return 0, questdbconnect.NewConfigError("malformed geohash precision %q", prec)
	}
}
