package engine

import (
	"math/rand"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// PlacementObjective scores a candidate placement; higher is better. The
// genetic placer treats the objective as injectable so a real fitness
// model can be supplied without touching the search loop.
type PlacementObjective interface {
	Score(panels []model.Panel, site model.Site) float64
}

// UtilizationObjective is the default fitness: site coverage by in-bounds
// panels, penalized per overlapping pair and per out-of-bounds panel.
type UtilizationObjective struct{}

// Score returns coverage minus overlap and boundary penalties. It can go
// negative for heavily conflicting candidates, which is fine for ranking.
func (UtilizationObjective) Score(panels []model.Panel, site model.Site) float64 {
	siteArea := site.Area()
	if siteArea == 0 {
		return 0
	}

	var covered float64
	penalty := 0.0
	for i, p := range panels {
		if !p.InBounds(site) {
			penalty += 0.2
			continue
		}
		covered += p.Area()
		for j := i + 1; j < len(panels); j++ {
			if p.Overlaps(panels[j]) {
				penalty += 0.1
			}
		}
	}
	return covered/siteArea - penalty
}

// placementGene is one panel's candidate position and rotation.
type placementGene struct {
	x, y     float64
	rotation float64 // 0 or 90
}

// individual is a candidate solution: one gene per panel.
type individual struct {
	genes   []placementGene
	fitness float64
}

// GeneticPlacer runs a bounded population search over panel positions and
// rotations. It is a search skeleton, not a tuned GA: selection is uniform
// random, crossover is single-point at the midpoint, and work is bounded
// by population and generation counts.
type GeneticPlacer struct {
	Settings  model.PlacementSettings
	Objective PlacementObjective
}

// Place searches for the fittest placement observed across all
// generations. Panels too large for the site in either orientation are
// returned unplaced before the search starts.
func (g *GeneticPlacer) Place(panels []model.Panel, site model.Site) PlaceResult {
	objective := g.Objective
	if objective == nil {
		objective = UtilizationObjective{}
	}
	cfg := g.Settings.Genetic
	if cfg.PopulationSize <= 0 {
		cfg = model.DefaultGeneticConfig()
	}

	var result PlaceResult
	var searchable []model.Panel
	for _, p := range panels {
		if fitsSite(p, site, 0) || fitsSite(p, site, 90) {
			searchable = append(searchable, p)
		} else {
			result.Unplaced = append(result.Unplaced, p)
		}
	}
	if len(searchable) == 0 {
		return result
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	population := make([]individual, cfg.PopulationSize)
	for i := range population {
		population[i] = individual{genes: g.randomGenes(rng, searchable, site)}
		population[i].fitness = objective.Score(decode(searchable, population[i].genes), site)
	}

	best := fittest(population)

	for gen := 0; gen < cfg.Generations; gen++ {
		next := make([]individual, 0, cfg.PopulationSize)

		// Carry the best individual observed so far unchanged.
		next = append(next, copyIndividual(best))

		for len(next) < cfg.PopulationSize {
			p1 := population[rng.Intn(len(population))]
			p2 := population[rng.Intn(len(population))]

			child := crossoverMidpoint(p1, p2)
			g.mutate(rng, &child, searchable, site, cfg.MutationRate)

			child.fitness = objective.Score(decode(searchable, child.genes), site)
			next = append(next, child)
		}

		population = next
		if candidate := fittest(population); candidate.fitness > best.fitness {
			best = candidate
		}
	}

	result.Placed = decode(searchable, best.genes)
	return result
}

// randomGenes draws an in-bounds position and rotation for every panel.
func (g *GeneticPlacer) randomGenes(rng *rand.Rand, panels []model.Panel, site model.Site) []placementGene {
	genes := make([]placementGene, len(panels))
	for i, p := range panels {
		genes[i] = randomGene(rng, p, site)
	}
	return genes
}

func randomGene(rng *rand.Rand, p model.Panel, site model.Site) placementGene {
	rotation := 0.0
	if fitsSite(p, site, 90) && (!fitsSite(p, site, 0) || rng.Float64() < 0.5) {
		rotation = 90
	}
	p.Rotation = rotation
	maxX := site.Width - p.PlacedWidth()
	maxY := site.Length - p.PlacedHeight()
	return placementGene{
		x:        rng.Float64() * maxX,
		y:        rng.Float64() * maxY,
		rotation: rotation,
	}
}

func fitsSite(p model.Panel, site model.Site, rotation float64) bool {
	p.Rotation = rotation
	return p.PlacedWidth() <= site.Width && p.PlacedHeight() <= site.Length
}

// crossoverMidpoint splices the first half of one parent's genes with the
// second half of the other's.
func crossoverMidpoint(p1, p2 individual) individual {
	n := len(p1.genes)
	genes := make([]placementGene, n)
	mid := n / 2
	copy(genes[:mid], p1.genes[:mid])
	copy(genes[mid:], p2.genes[mid:])
	return individual{genes: genes}
}

// mutate re-randomizes each gene independently with probability rate.
func (g *GeneticPlacer) mutate(rng *rand.Rand, ind *individual, panels []model.Panel, site model.Site, rate float64) {
	for i := range ind.genes {
		if rng.Float64() < rate {
			ind.genes[i] = randomGene(rng, panels[i], site)
		}
	}
}

func fittest(population []individual) individual {
	best := population[0]
	for _, ind := range population[1:] {
		if ind.fitness > best.fitness {
			best = ind
		}
	}
	return copyIndividual(best)
}

func copyIndividual(ind individual) individual {
	genes := make([]placementGene, len(ind.genes))
	copy(genes, ind.genes)
	return individual{genes: genes, fitness: ind.fitness}
}

// decode applies genes to panels, producing placed copies.
func decode(panels []model.Panel, genes []placementGene) []model.Panel {
	placed := make([]model.Panel, len(panels))
	for i, p := range panels {
		p.X = genes[i].x
		p.Y = genes[i].y
		p.Rotation = genes[i].rotation
		p.Placed = true
		placed[i] = p
	}
	return placed
}
