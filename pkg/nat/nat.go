package nat

import (
	"errors"
	"math/bits"
)

var (
	ErrDivideByZero = errors.New("division by zero")
	ErrOverflow     = errors.New("value does not fit in the requested width")
)

const (
	limbBits  = 32
	limbBytes = limbBits / 8
	limbBase  = 1 << limbBits
)

// Nat is an unsigned integer of arbitrary size.
// Limbs are stored least significant first, and a normalized Nat has no high zero limbs.
// The zero value is the number zero.
type Nat []uint32

func (z Nat) norm() Nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[:i]
}

func (z Nat) clone() Nat {
	if len(z) == 0 {
		return nil
	}
	out := make(Nat, len(z))
	copy(out, z)
	return out
}

// FromBytes interprets b as a big-endian unsigned integer.
func FromBytes(b []byte) Nat {
	z := make(Nat, (len(b)+limbBytes-1)/limbBytes)
	for i := 0; i < len(b); i++ {
		z[i/limbBytes] |= uint32(b[len(b)-1-i]) << (8 * (i % limbBytes))
	}
	return z.norm()
}

// FillBytes renders x as big-endian bytes, left padded with zeros to exactly width bytes.
// ErrOverflow is returned if x needs more than width bytes.
func (x Nat) FillBytes(width int) ([]byte, error) {
	x = x.norm()
	if width < 0 || (x.BitLen()+7)/8 > width {
		return nil, ErrOverflow
	}
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		limb := i / limbBytes
		if limb >= len(x) {
			break
		}
		out[width-1-i] = byte(x[limb] >> (8 * (i % limbBytes)))
	}
	return out, nil
}

// IsZero reports whether x == 0.
func (x Nat) IsZero() bool {
	return len(x.norm()) == 0
}

// BitLen returns the number of significant bits in x.
func (x Nat) BitLen() int {
	x = x.norm()
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*limbBits + bits.Len32(x[len(x)-1])
}

// Cmp returns -1, 0 or 1 when x is less than, equal to or greater than y.
func (x Nat) Cmp(y Nat) int {
	x, y = x.norm(), y.norm()
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// Mul returns x*y using long multiplication.
func Mul(x, y Nat) Nat {
	x, y = x.norm(), y.norm()
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	z := make(Nat, len(x)+len(y))
	for j, yj := range y {
		if yj == 0 {
			continue
		}
		var carry uint64
		for i, xi := range x {
			// (2^32-1)^2 + 2*(2^32-1) == 2^64-1, so this never overflows.
			t := uint64(xi)*uint64(yj) + uint64(z[i+j]) + carry
			z[i+j] = uint32(t)
			carry = t >> limbBits
		}
		z[j+len(x)] = uint32(carry)
	}
	return z.norm()
}

// DivMod returns the quotient and remainder of u/v.
func DivMod(u, v Nat) (q, r Nat, err error) {
	u, v = u.norm(), v.norm()
	if len(v) == 0 {
		return nil, nil, ErrDivideByZero
	}
	if u.Cmp(v) < 0 {
		return nil, u.clone(), nil
	}
	if len(v) == 1 {
		q, rem := divLimb(u, v[0])
		return q, Nat{rem}.norm(), nil
	}
	q, r = divLong(u, v)
	return q, r, nil
}

func divLimb(u Nat, d uint32) (Nat, uint32) {
	q := make(Nat, len(u))
	var rem uint64
	for i := len(u) - 1; i >= 0; i-- {
		cur := rem<<limbBits | uint64(u[i])
		q[i] = uint32(cur / uint64(d))
		rem = cur % uint64(d)
	}
	return q.norm(), uint32(rem)
}

// divLong is Knuth's algorithm D. It requires len(v) >= 2 and u >= v.
func divLong(u, v Nat) (Nat, Nat) {
	n := len(v)
	m := len(u) - n

	// Normalize so the top bit of the divisor is set, which keeps each qhat estimate within 2 of the true digit.
	s := uint(bits.LeadingZeros32(v[n-1]))
	vn := make(Nat, n)
	for i := n - 1; i > 0; i-- {
		vn[i] = v[i]<<s | v[i-1]>>(limbBits-s)
	}
	vn[0] = v[0] << s

	un := make(Nat, len(u)+1)
	un[len(u)] = u[len(u)-1] >> (limbBits - s)
	for i := len(u) - 1; i > 0; i-- {
		un[i] = u[i]<<s | u[i-1]>>(limbBits-s)
	}
	un[0] = u[0] << s

	q := make(Nat, m+1)
	top := uint64(vn[n-1])
	next := uint64(vn[n-2])
	for j := m; j >= 0; j-- {
		num := uint64(un[j+n])<<limbBits | uint64(un[j+n-1])
		qhat := num / top
		rhat := num % top
		for qhat >= limbBase || qhat*next > (rhat<<limbBits|uint64(un[j+n-2])) {
			qhat--
			rhat += top
			if rhat >= limbBase {
				break
			}
		}

		// Multiply and subtract.
		var k, t int64
		for i := 0; i < n; i++ {
			p := qhat * uint64(vn[i])
			t = int64(un[i+j]) - k - int64(p&0xffffffff)
			un[i+j] = uint32(t)
			k = int64(p>>limbBits) - (t >> limbBits)
		}
		t = int64(un[j+n]) - k
		un[j+n] = uint32(t)

		// qhat was one too large, add the divisor back.
		if t < 0 {
			qhat--
			var c uint64
			for i := 0; i < n; i++ {
				sum := uint64(un[i+j]) + uint64(vn[i]) + c
				un[i+j] = uint32(sum)
				c = sum >> limbBits
			}
			un[j+n] += uint32(c)
		}
		q[j] = uint32(qhat)
	}

	r := make(Nat, n)
	for i := 0; i < n-1; i++ {
		r[i] = un[i]>>s | un[i+1]<<(limbBits-s)
	}
	r[n-1] = un[n-1] >> s
	return q.norm(), r.norm()
}
