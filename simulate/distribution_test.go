package simulate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "normal", "Normal", "gaussian", " NORMAL "} {
		m, err := ModelByName(name)
		assert.NoError(t, err, name)
		assert.IsType(t, Normal{}, m, name)
	}

	for _, name := range []string{"student-t", "studentt", "t", "Student-T"} {
		m, err := ModelByName(name)
		assert.NoError(t, err, name)
		assert.IsType(t, StudentT{}, m, name)
	}

	_, err := ModelByName("cauchy")
	assert.Error(t, err)
}

func TestNormalDrawMoments(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	m := Normal{}

	const n = 200_000
	mean, vol := 0.07, 0.15
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := m.Draw(rng, mean, vol)
		sum += v
		sumSq += v * v
	}
	gotMean := sum / n
	gotStd := math.Sqrt(sumSq/n - gotMean*gotMean)

	assert.InDelta(t, mean, gotMean, 0.005)
	assert.InDelta(t, vol, gotStd, 0.005)
}

func TestStudentTDrawMoments(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	m := StudentT{DoF: 5}

	const n = 200_000
	mean, vol := 0.07, 0.15
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := m.Draw(rng, mean, vol)
		sum += v
		sumSq += v * v
	}
	gotMean := sum / n
	gotStd := math.Sqrt(sumSq/n - gotMean*gotMean)

	// Variance is rescaled so the t draw matches the requested stddev.
	assert.InDelta(t, mean, gotMean, 0.005)
	assert.InDelta(t, vol, gotStd, 0.01)
}

func TestStudentTFatterTailsThanNormal(t *testing.T) {
	t.Parallel()

	const n = 200_000
	vol := 0.15
	threshold := 3.5 * vol

	count := func(m ReturnModel, seed int64) int {
		rng := rand.New(rand.NewSource(seed))
		tail := 0
		for i := 0; i < n; i++ {
			if math.Abs(m.Draw(rng, 0, vol)) > threshold {
				tail++
			}
		}
		return tail
	}

	normalTail := count(Normal{}, 3)
	tTail := count(StudentT{DoF: 5}, 3)
	assert.Greater(t, tTail, normalTail)
}

func TestStudentTLowDoFFallsBackToDefault(t *testing.T) {
	t.Parallel()

	// DoF below 3 has undefined variance; Draw must still return a
	// finite value.
	rng := rand.New(rand.NewSource(4))
	m := StudentT{DoF: 1}
	for i := 0; i < 1000; i++ {
		v := m.Draw(rng, 0.05, 0.2)
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestDrawDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	draw := func(seed int64) []float64 {
		rng := rand.New(rand.NewSource(seed))
		m := Normal{}
		out := make([]float64, 10)
		for i := range out {
			out[i] = m.Draw(rng, 0.07, 0.15)
		}
		return out
	}

	assert.Equal(t, draw(99), draw(99))
	assert.NotEqual(t, draw(99), draw(100))
}
