package stockout

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ReferenceGenerator produce referencias legibles y ordenables:
//
//	retiro:  SO-YYYYMMDD-HHMMSS-RRR
//	asiento: GL-YYYYMMDD-RRRR
//
// El sufijo parte de un offset aleatorio y avanza con un contador interno, de
// modo que llamadas dentro del mismo segundo no colisionan en proceso. La
// unicidad global la garantiza la constraint única de la base; el caller
// reintenta con una referencia nueva ante una violación.
type ReferenceGenerator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	counter uint64
	now     func() time.Time
}

// NewReferenceGenerator construye el generador con reloj y semilla propios.
func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewReferenceGeneratorAt permite fijar el reloj (tests).
func NewReferenceGeneratorAt(now func() time.Time) *ReferenceGenerator {
	g := NewReferenceGenerator()
	g.now = now
	return g
}

// StockOutReference genera la referencia del retiro: SO-YYYYMMDD-HHMMSS-RRR.
func (g *ReferenceGenerator) StockOutReference() string {
	t := g.now()
	return fmt.Sprintf("SO-%s-%s-%s", t.Format("20060102"), t.Format("150405"), g.suffix(3))
}

// GLTransactionNumber genera el número del asiento: GL-YYYYMMDD-RRRR.
func (g *ReferenceGenerator) GLTransactionNumber() string {
	t := g.now()
	return fmt.Sprintf("GL-%s-%s", t.Format("20060102"), g.suffix(4))
}

// suffix devuelve n caracteres base36 derivados de offset aleatorio + contador:
// 36^3 = 46656 valores distintos por segundo para los retiros.
func (g *ReferenceGenerator) suffix(n int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.counter == 0 {
		g.counter = uint64(g.rng.Int63())
	}
	g.counter++
	v := g.counter
	buf := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		buf[i] = base36[v%36]
		v /= 36
	}
	return string(buf)
}
