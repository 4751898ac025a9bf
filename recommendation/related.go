package recommendation

import (
	"math"
	"sort"

	"shopserver/cart"
)

const (
	// relatedTextMatchCap максимум учитываемых пересечений токенов
	relatedTextMatchCap = 6
	// relatedTextMatchWeight вклад одного пересечения токенов
	relatedTextMatchWeight = 0.2
	// relatedPriceBandRatio доля цены фокусного товара в ценовом коридоре
	relatedPriceBandRatio = 0.3
	// relatedPriceBandFloor минимальная ширина ценового коридора
	relatedPriceBandFloor = 15.0
	// relatedOutOfBandPenalty штраф за цену вне коридора
	relatedOutOfBandPenalty = -0.5
	// relatedUpgradeBonus бонус за более высокий tier при сопоставимой цене
	relatedUpgradeBonus = 0.6
	// relatedUpgradePriceRatio верхняя граница цены апгрейда
	relatedUpgradePriceRatio = 1.2
	// relatedBetterValueBonus бонус за цену не выше фокусной
	relatedBetterValueBonus = 0.3
	// relatedScoreThreshold минимальная оценка для попадания в выдачу
	relatedScoreThreshold = 0.1
)

// RelatedItem кандидат из пула с итоговой оценкой похожести
type RelatedItem struct {
	cart.CartItem
	Score       float64 `json:"score"`
	Preferred   bool    `json:"preferred"`
	Upgrade     bool    `json:"upgrade"`
	BetterValue bool    `json:"betterValue"`
}

// Related оценивает кандидатов из пула относительно фокусного товара.
// Оценка складывается из пересечения токенов, близости цены и бонусов
// за апгрейд или лучшую цену; кандидаты с оценкой не выше порога
// отбрасываются. Preferred-записи идут первыми, внутри групп порядок
// по убыванию оценки.
func (e *Engine) Related(focal cart.CartItem, pool []cart.CartItem) []RelatedItem {
	focalTokens := e.stemmer.StemSet(focal.SearchText())
	focalTier := e.classifier.DetectTier(focal.SearchText())
	band := math.Max(focal.Price*relatedPriceBandRatio, relatedPriceBandFloor)

	scored := make([]RelatedItem, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == focal.ID {
			continue
		}

		overlap := 0
		for token := range e.stemmer.StemSet(candidate.SearchText()) {
			if _, ok := focalTokens[token]; ok {
				overlap++
			}
		}
		if overlap > relatedTextMatchCap {
			overlap = relatedTextMatchCap
		}
		textScore := float64(overlap) * relatedTextMatchWeight

		delta := math.Abs(candidate.Price - focal.Price)
		priceScore := relatedOutOfBandPenalty
		if delta <= band {
			priceScore = 1 - delta/band
		}

		entry := RelatedItem{CartItem: candidate}

		candidateTier := e.classifier.DetectTier(candidate.SearchText())
		if candidateTier > focalTier && candidate.Price <= focal.Price*relatedUpgradePriceRatio {
			entry.Upgrade = true
			entry.Preferred = true
		}
		if candidate.Price <= focal.Price {
			entry.BetterValue = true
			entry.Preferred = true
		}

		entry.Score = priceScore + textScore
		if entry.Upgrade {
			entry.Score += relatedUpgradeBonus
		}
		if entry.BetterValue {
			entry.Score += relatedBetterValueBonus
		}

		if entry.Score <= relatedScoreThreshold {
			continue
		}
		scored = append(scored, entry)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Preferred != scored[j].Preferred {
			return scored[i].Preferred
		}
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > e.maxRelated {
		scored = scored[:e.maxRelated]
	}
	return scored
}
