package amount

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// FractionalCount is the decimal count of the fractional part
const FractionalCount = 18

// FractionalMax is the max value of the fractional part
const FractionalMax = 1000000000000000000

// COIN is 1 coin in the smallest unit
var COIN = NewAmount(1, 0)

// ZeroCoin is a zero amount
var ZeroCoin = NewAmount(0, 0)

// Amount is the precision float value based on the fractional count
type Amount struct {
	*big.Int
}

// NewAmount returns the amount that is consisted of integer and fractional
func NewAmount(i uint64, f uint64) *Amount {
	bi := new(big.Int).SetUint64(i)
	bf := new(big.Int).SetUint64(f)
	return &Amount{Int: bi.Add(bi.Mul(bi, big.NewInt(FractionalMax)), bf)}
}

// NewAmountFromBytes parses the amount from the byte array
func NewAmountFromBytes(bs []byte) *Amount {
	return &Amount{Int: new(big.Int).SetBytes(bs)}
}

// Clone returns the copy of the amount
func (am *Amount) Clone() *Amount {
	return &Amount{Int: new(big.Int).Set(am.Int)}
}

// Add returns a + b (a and b is not changed)
func (am *Amount) Add(b *Amount) *Amount {
	return &Amount{Int: new(big.Int).Add(am.Int, b.Int)}
}

// Sub returns a - b (a and b is not changed)
func (am *Amount) Sub(b *Amount) *Amount {
	return &Amount{Int: new(big.Int).Sub(am.Int, b.Int)}
}

// Mul returns a * b (a and b is not changed)
func (am *Amount) Mul(b *Amount) *Amount {
	return &Amount{Int: new(big.Int).Mul(am.Int, b.Int)}
}

// Div returns a / b (a and b is not changed)
func (am *Amount) Div(b *Amount) *Amount {
	return &Amount{Int: new(big.Int).Div(am.Int, b.Int)}
}

// MulC returns a * b (a is not changed)
func (am *Amount) MulC(b int64) *Amount {
	return &Amount{Int: new(big.Int).Mul(am.Int, big.NewInt(b))}
}

// DivC returns a / b (a is not changed)
func (am *Amount) DivC(b int64) *Amount {
	return &Amount{Int: new(big.Int).Div(am.Int, big.NewInt(b))}
}

// IsZero returns a == 0
func (am *Amount) IsZero() bool {
	return am.Int.Sign() == 0
}

// IsPlus returns a > 0
func (am *Amount) IsPlus() bool {
	return am.Int.Sign() > 0
}

// IsMinus returns a < 0
func (am *Amount) IsMinus() bool {
	return am.Int.Sign() < 0
}

// Less returns a < b
func (am *Amount) Less(b *Amount) bool {
	return am.Int.Cmp(b.Int) < 0
}

// Equal returns a == b
func (am *Amount) Equal(b *Amount) bool {
	return am.Int.Cmp(b.Int) == 0
}

// String returns the float string of the amount
func (am *Amount) String() string {
	if am.Int.Sign() < 0 {
		return "-" + (&Amount{Int: new(big.Int).Neg(am.Int)}).String()
	}
	str := am.Int.String()
	if len(str) < FractionalCount {
		str = strings.Repeat("0", FractionalCount-len(str)) + str
	}
	ip := str[:len(str)-FractionalCount]
	if len(ip) == 0 {
		ip = "0"
	}
	fp := strings.TrimRight(str[len(str)-FractionalCount:], "0")
	if len(fp) == 0 {
		return ip
	}
	return ip + "." + fp
}

// MarshalJSON is a marshaler function
func (am *Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + am.String() + `"`), nil
}

// UnmarshalJSON is a unmarshaler function
func (am *Amount) UnmarshalJSON(bs []byte) error {
	if len(bs) < 2 || bs[0] != '"' || bs[len(bs)-1] != '"' {
		return errors.WithStack(ErrInvalidAmountFormat)
	}
	v, err := ParseAmount(string(bs[1 : len(bs)-1]))
	if err != nil {
		return err
	}
	am.Int = v.Int
	return nil
}

// ParseAmount parses the float string into the amount
func ParseAmount(str string) (*Amount, error) {
	neg := false
	if strings.HasPrefix(str, "-") {
		neg = true
		str = str[1:]
	}
	ls := strings.SplitN(str, ".", 2)
	switch len(ls) {
	case 1:
		pi, ok := new(big.Int).SetString(ls[0], 10)
		if !ok {
			return nil, errors.WithStack(ErrInvalidAmountFormat)
		}
		am := &Amount{Int: pi.Mul(pi, big.NewInt(FractionalMax))}
		if neg {
			am.Int.Neg(am.Int)
		}
		return am, nil
	case 2:
		if len(ls[1]) > FractionalCount {
			return nil, errors.WithStack(ErrInvalidAmountFormat)
		}
		pi, ok := new(big.Int).SetString(ls[0], 10)
		if !ok {
			return nil, errors.WithStack(ErrInvalidAmountFormat)
		}
		fs := ls[1] + strings.Repeat("0", FractionalCount-len(ls[1]))
		pf, ok := new(big.Int).SetString(fs, 10)
		if !ok {
			return nil, errors.WithStack(ErrInvalidAmountFormat)
		}
		am := &Amount{Int: pi.Add(pi.Mul(pi, big.NewInt(FractionalMax)), pf)}
		if neg {
			am.Int.Neg(am.Int)
		}
		return am, nil
	default:
		return nil, errors.WithStack(ErrInvalidAmountFormat)
	}
}

// MustParseAmount panics when the amount is not parsable
func MustParseAmount(str string) *Amount {
	am, err := ParseAmount(str)
	if err != nil {
		panic(err)
	}
	return am
}
