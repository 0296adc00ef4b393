package gonudg

import (
	"math"
)

// JacobiP evaluates the normalized Jacobi polynomial of type (alpha,beta) and
// order n at the points x
func JacobiP(x []float64, alpha, beta float64, n int) []float64 {
	Np := len(x)

	gamma0 := Gamma0(alpha, beta)
	pPrev := make([]float64, Np)
	for i := range pPrev {
		pPrev[i] = 1.0 / math.Sqrt(gamma0)
	}
	if n == 0 {
		return pPrev
	}

	gamma1 := (alpha + 1) * (beta + 1) / (alpha + beta + 3) * gamma0
	p := make([]float64, Np)
	for i := range p {
		p[i] = ((alpha+beta+2)*x[i] + (alpha - beta)) / 2 / math.Sqrt(gamma1)
	}
	if n == 1 {
		return p
	}

	// three term recurrence
	aold := 2.0 / (2.0 + alpha + beta) * math.Sqrt((alpha+1)*(beta+1)/(alpha+beta+3))
	for i := 1; i < n; i++ {
		fi := float64(i)
		h1 := 2*fi + alpha + beta
		anew := 2.0 / (h1 + 2) * math.Sqrt((fi+1)*(fi+1+alpha+beta)*
			(fi+1+alpha)*(fi+1+beta)/(h1+1)/(h1+3))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2)

		pNext := make([]float64, Np)
		for j := range pNext {
			pNext[j] = 1 / anew * (-aold*pPrev[j] + (x[j]-bnew)*p[j])
		}
		pPrev, p = p, pNext
		aold = anew
	}
	return p
}
