package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// MatMul computes a @ b for 2-D tensors a [m, k] and b [k, n].
func MatMul(a, b *Tensor) *Tensor {
	m, k := dims2("MatMul", a)
	kb, n := dims2("MatMul", b)
	if k != kb {
		panic(fmt.Sprintf("MatMul: inner dimensions differ: %v @ %v", a.shape, b.shape))
	}
	out := Zeros(Shape{m, n})
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, general(a), general(b), 0, general(out))
	return out
}

// MatMulTransB computes a @ b^T for a [m, k] and b [n, k].
//
// This is the shape of a linear layer's forward pass, where b holds the
// weight matrix as [out_features, in_features].
func MatMulTransB(a, b *Tensor) *Tensor {
	m, k := dims2("MatMulTransB", a)
	n, kb := dims2("MatMulTransB", b)
	if k != kb {
		panic(fmt.Sprintf("MatMulTransB: inner dimensions differ: %v @ %v^T", a.shape, b.shape))
	}
	out := Zeros(Shape{m, n})
	blas32.Gemm(blas.NoTrans, blas.Trans, 1, general(a), general(b), 0, general(out))
	return out
}

// MatMulTransA computes a^T @ b for a [k, m] and b [k, n].
func MatMulTransA(a, b *Tensor) *Tensor {
	k, m := dims2("MatMulTransA", a)
	kb, n := dims2("MatMulTransA", b)
	if k != kb {
		panic(fmt.Sprintf("MatMulTransA: inner dimensions differ: %v^T @ %v", a.shape, b.shape))
	}
	out := Zeros(Shape{m, n})
	blas32.Gemm(blas.Trans, blas.NoTrans, 1, general(a), general(b), 0, general(out))
	return out
}

func dims2(op string, t *Tensor) (rows, cols int) {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("%s: expected 2D tensor, got shape %v", op, t.shape))
	}
	return t.shape[0], t.shape[1]
}

func general(t *Tensor) blas32.General {
	return blas32.General{
		Rows:   t.shape[0],
		Cols:   t.shape[1],
		Stride: t.shape[1],
		Data:   t.data,
	}
}
