// Package collections содержит избранное, сравнение и недавно просмотренные ароматы.
// Наборы хранятся как списки id в порядке добавления.
package collections

import (
	"errors"
	"sort"

	"perfume-store/internal/models"

	lru "github.com/hashicorp/golang-lru"
)

// Ограничения размеров наборов
const (
	MaxComparison     = 4
	MaxRecentlyViewed = 10
)

// ErrComparisonFull - в сравнении уже максимальное число ароматов
var ErrComparisonFull = errors.New("comparison is full")

// Contains сообщает, есть ли id в наборе
func Contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle добавляет id, если его нет, и удаляет, если есть.
// Повторный вызов возвращает исходный набор.
func Toggle(ids []int64, id int64) ([]int64, bool) {
	if Contains(ids, id) {
		return remove(ids, id), false
	}
	out := make([]int64, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id), true
}

// ToggleBounded работает как Toggle, но отказывает в добавлении
// при заполненном наборе. Старые элементы не вытесняются.
func ToggleBounded(ids []int64, id int64, limit int) ([]int64, bool, error) {
	if !Contains(ids, id) && len(ids) >= limit {
		return ids, false, ErrComparisonFull
	}
	out, added := Toggle(ids, id)
	return out, added, nil
}

// Dedupe убирает повторы, сохраняя первое вхождение
func Dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// RecentlyViewed помещает id в начало списка просмотренных.
// Список без повторов и не длиннее MaxRecentlyViewed.
func RecentlyViewed(ids []int64, id int64) []int64 {
	cache, err := lru.New(MaxRecentlyViewed)
	if err != nil {
		return []int64{id}
	}

	// В кеш кладем от старых к новым, чтобы вытеснялись самые старые
	for i := len(ids) - 1; i >= 0; i-- {
		cache.Add(ids[i], struct{}{})
	}
	cache.Add(id, struct{}{})

	keys := cache.Keys()
	out := make([]int64, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		out = append(out, keys[i].(int64))
	}
	return out
}

// TrimRecentlyViewed приводит сохраненный список к инварианту
func TrimRecentlyViewed(ids []int64) []int64 {
	out := Dedupe(ids)
	if len(out) > MaxRecentlyViewed {
		out = out[:MaxRecentlyViewed]
	}
	return out
}

// SharedNotes возвращает ноты, общие для всех ароматов.
// Для пустого сравнения и одного аромата результат пустой.
func SharedNotes(products []models.Product) []string {
	if len(products) < 2 {
		return []string{}
	}

	counts := make(map[string]int)
	for _, p := range products {
		seen := make(map[string]struct{}, len(p.Notes))
		for _, note := range p.Notes {
			if _, ok := seen[note]; ok {
				continue
			}
			seen[note] = struct{}{}
			counts[note]++
		}
	}

	shared := []string{}
	for note, n := range counts {
		if n == len(products) {
			shared = append(shared, note)
		}
	}
	sort.Strings(shared)
	return shared
}

func remove(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
