package curves

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecp256k1Scalar(t *testing.T) {
	curve := NewSecp256k1()

	// Test NewScalar
	s1, err := curve.NewScalar()
	assert.NoError(t, err)
	assert.NotNil(t, s1)
	assert.True(t, s1.Sign() >= 0 && s1.Cmp(curve.Params().N) < 0)

	// Test ScalarBaseMult against a known small scalar
	two := big.NewInt(2)
	gx, gy := curve.ScalarBaseMult(big.NewInt(1))

	px, py := curve.ScalarBaseMult(two)
	qx, qy := curve.Add(gx, gy, gx, gy)
	assert.Equal(t, qx, px)
	assert.Equal(t, qy, py)
}

func TestSecp256k1ScalarMult(t *testing.T) {
	curve := NewSecp256k1()

	k := big.NewInt(5)
	gx, gy := curve.ScalarBaseMult(big.NewInt(1))
	p1x, p1y := curve.ScalarMult(gx, gy, k)
	p2x, p2y := curve.ScalarBaseMult(k)

	assert.Equal(t, p2x, p1x)
	assert.Equal(t, p2y, p1y)
}
