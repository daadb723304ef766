// Package polyn is for arithmetic with polynomials in one variable.
/*
BSD 3-Clause License

Copyright (c) the easement authors.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package polyn

import (
	"bytes"
	"fmt"
	"math"

	"github.com/emirpasic/gods/maps/treemap"

	easement "github.com/ankon/xtrkcad-sub003"
)

// X is a helper for quick construction of polynomials.
// It denotes a term
//
//	C⋅u^I
//
// I > 0
type X struct {
	I int     // exponent of u
	C float64 // coefficient
}

// New creates a polynomial, given the constant term and further terms.
//
// Use it as
//
//	polyn.New(8, polyn.X{2, 5}, polyn.X{1, 2.0/3})
//
// to get
//
//	P(u) = 8 + 2/3u + 5u²
func New(c float64, tms ...X) (Polynomial, error) {
	p := NewConstantPolynomial(c)
	var err error
	for _, t := range tms {
		if t.I < 1 {
			err = fmt.Errorf("term exponent must be at least 1, skipping %v", t)
		} else {
			p.SetTerm(t.I, t.C)
		}
	}
	return p, err
}

// Polynomial is a type for polynomials in one variable
//
//	a0 + a1 u + a2 u² + ... + an uⁿ .
//
// We store the coefficients only, in a TreeMap (sorted map) keyed by
// exponent. Index 0 is the constant term. Coefficients are of type float64.
type Polynomial struct {
	Terms *treemap.Map
}

// NewConstantPolynomial creates a Polynomial consisting of just a constant term.
func NewConstantPolynomial(c float64) Polynomial {
	p := Polynomial{}
	p.checkTerms()
	p.Terms.Put(0, c)
	return p
}

func (p *Polynomial) checkTerms() {
	if p.Terms == nil {
		p.Terms = treemap.NewWithIntComparator()
	}
}

// SetTerm sets the coefficient for the term of exponent i.
// For i=0, sets the constant term.
func (p Polynomial) SetTerm(i int, coeff float64) Polynomial {
	p.checkTerms()
	p.Terms.Put(i, coeff)
	return p
}

// CopyPolynomial makes a copy of a Polynomial.
func (p Polynomial) CopyPolynomial() Polynomial {
	p1 := NewConstantPolynomial(0.0)
	p.checkTerms()
	it := p.Terms.Iterator()
	for it.Next() {
		p1.SetTerm(it.Key().(int), it.Value().(float64))
	}
	return p1
}

// Internal method: add or subtract 2 polynomials.
// Flag doAdd signals addition or subtraction.
func (p Polynomial) addOrSub(p2 Polynomial, doAdd bool) Polynomial {
	p1 := p.CopyPolynomial()
	p2.checkTerms()
	it := p2.Terms.Iterator()
	for it.Next() {
		i := it.Key().(int)
		c := it.Value().(float64)
		if doAdd {
			p1.SetTerm(i, p1.GetCoeffForTerm(i)+c)
		} else {
			p1.SetTerm(i, p1.GetCoeffForTerm(i)-c)
		}
	}
	return p1
}

// Add adds two Polynomials. Returns a new Polynomial.
func (p Polynomial) Add(p2 Polynomial) Polynomial {
	return p.addOrSub(p2, true)
}

// Subtract subtracts two Polynomials. Returns a new Polynomial.
func (p Polynomial) Subtract(p2 Polynomial) Polynomial {
	return p.addOrSub(p2, false)
}

// Scale multiplies all coefficients by c. Returns a new Polynomial.
func (p Polynomial) Scale(c float64) Polynomial {
	p1 := p.CopyPolynomial()
	it := p1.Terms.Iterator()
	for it.Next() {
		p1.Terms.Put(it.Key(), it.Value().(float64)*c)
	}
	return p1
}

// Multiply multiplies two Polynomials. Returns a new Polynomial.
func (p Polynomial) Multiply(p2 Polynomial) Polynomial {
	p.checkTerms()
	p2.checkTerms()
	p1 := NewConstantPolynomial(0.0)
	it := p.Terms.Iterator()
	for it.Next() {
		i, a := it.Key().(int), it.Value().(float64)
		it2 := p2.Terms.Iterator()
		for it2.Next() {
			j, b := it2.Key().(int), it2.Value().(float64)
			p1.SetTerm(i+j, p1.GetCoeffForTerm(i+j)+a*b)
		}
	}
	return p1
}

// Derivative returns dP/du.
func (p Polynomial) Derivative() Polynomial {
	p.checkTerms()
	d := NewConstantPolynomial(0.0)
	it := p.Terms.Iterator()
	for it.Next() {
		if i := it.Key().(int); i > 0 {
			d.SetTerm(i-1, float64(i)*it.Value().(float64))
		}
	}
	return d
}

// Integral returns the antiderivative of p with constant term c.
func (p Polynomial) Integral(c float64) Polynomial {
	p.checkTerms()
	q := NewConstantPolynomial(c)
	it := p.Terms.Iterator()
	for it.Next() {
		i := it.Key().(int)
		q.SetTerm(i+1, it.Value().(float64)/float64(i+1))
	}
	return q
}

// Eval evaluates p at u, using Horner's scheme over the stored exponents.
func (p Polynomial) Eval(u float64) float64 {
	if p.Terms == nil {
		return 0
	}
	it := p.Terms.Iterator()
	if !it.Last() {
		return 0
	}
	deg := it.Key().(int)
	v := it.Value().(float64)
	for it.Prev() {
		i := it.Key().(int)
		v = v*math.Pow(u, float64(deg-i)) + it.Value().(float64)
		deg = i
	}
	return v * math.Pow(u, float64(deg))
}

// Degree returns the largest exponent with a non-zero coefficient.
// The zero polynomial has degree 0.
func (p Polynomial) Degree() int {
	if p.Terms == nil {
		return 0
	}
	it := p.Terms.Iterator()
	for it.End(); it.Prev(); {
		if it.Value().(float64) != 0 {
			return it.Key().(int)
		}
	}
	return 0
}

// Zap eliminates all terms with coefficient=0 from a polynomial.
func (p Polynomial) Zap() Polynomial {
	p.checkTerms()
	for _, pos := range p.Terms.Keys() {
		if c, _ := p.Terms.Get(pos); easement.Is0(c.(float64)) {
			p.Terms.Remove(pos)
		}
	}
	if _, ok := p.Terms.Get(0); !ok {
		p.Terms.Put(0, 0.0)
	}
	return p
}

// IsConstant checks wether
// a Polynomial is a constant, i.e. p = { c }? Returns the constant and a flag.
func (p Polynomial) IsConstant() (float64, bool) {
	return p.GetCoeffForTerm(0), p.Degree() == 0
}

// GetCoeffForTerm gets the coefficient for the term of exponent i.
//
// Example:
//
//	p = u + 3u²
//
// ⇒
//
//	coeff(2) = 3
func (p Polynomial) GetCoeffForTerm(i int) float64 {
	if p.Terms == nil {
		return 0.0
	}
	if c, found := p.Terms.Get(i); found {
		return c.(float64)
	}
	return 0.0
}

// Coefficients returns a0 … an, with n the degree of p.
func (p Polynomial) Coefficients() []float64 {
	cs := make([]float64, p.Degree()+1)
	for i := range cs {
		cs[i] = p.GetCoeffForTerm(i)
	}
	return cs
}

// String creates a readable string representation for a Polynomial.
// Coefficients are rounded to the 4th place.
func (p Polynomial) String() string {
	var buffer bytes.Buffer
	p.checkTerms()
	it := p.Terms.Iterator()
	first := true
	for it.Next() {
		i, c := it.Key().(int), it.Value().(float64)
		if i > 0 && c == 0 {
			continue
		}
		switch {
		case first:
			first = false
			if c < 0 {
				buffer.WriteString("-")
			}
		case c < 0:
			buffer.WriteString(" - ")
		default:
			buffer.WriteString(" + ")
		}
		c = math.Abs(c)
		switch i {
		case 0:
			fmt.Fprintf(&buffer, "%.4g", c)
		case 1:
			fmt.Fprintf(&buffer, "%.4gu", c)
		default:
			fmt.Fprintf(&buffer, "%.4gu^%d", c, i)
		}
	}
	return buffer.String()
}
