package service

import (
	"math/rand/v2"

	"hamperhouse/storefront-service/internal/app/storefront/entity"
)

// Рейтинг на лендингах декоративный: 4 или 5 звезд
const (
	minRating = 4
	maxRating = 5
)

// SampleFeatured выбирает до k товаров без повторов и проставляет каждому рейтинг
// Результат всегда подмножество products, исходный срез не меняется
func SampleFeatured(products []entity.ProductView, k int, rng *rand.Rand) []entity.FeaturedProduct {
	picked := sample(products, k, rng)

	featured := make([]entity.FeaturedProduct, 0, len(picked))
	for _, p := range picked {
		featured = append(featured, entity.FeaturedProduct{
			ProductView: p,
			Rating:      minRating + rng.IntN(maxRating-minRating+1),
		})
	}
	return featured
}

// sample - частичная перетасовка Фишера-Йетса по копии среза
func sample[T any](items []T, k int, rng *rand.Rand) []T {
	if k <= 0 || len(items) == 0 {
		return []T{}
	}

	pool := make([]T, len(items))
	copy(pool, items)

	if k > len(pool) {
		k = len(pool)
	}

	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:k]
}

func defaultRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
