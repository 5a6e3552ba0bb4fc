// Package timerange интервальная арифметика над временем суток
//
// Интервалы полуоткрытые [Start, End) в минутах с начала суток.
// Используется движком доступности: рабочие часы минус перерывы
// минус существующие бронирования.
package timerange

// MinutesPerDay количество минут в сутках, верхняя граница любого интервала
const MinutesPerDay = 24 * 60

// Range полуоткрытый интервал [Start, End) в минутах с начала суток
type Range struct {
	Start int
	End   int
}

// IsValid возвращает true, если интервал непустой и лежит в пределах суток
func (r Range) IsValid() bool {
	return 0 <= r.Start && r.Start < r.End && r.End <= MinutesPerDay
}

// Overlaps возвращает true при реальном пересечении интервалов
// Граничащие интервалы (конец одного равен началу другого) не пересекаются
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Subtract вычитает каждый заблокированный интервал из каждого открытого.
// Блокировки применяются по одной, результат каждого вычитания становится
// входом следующего - так перекрывающиеся блокировки корректно складываются.
// Порядок входных интервалов значения не имеет, сортировка не требуется.
//
// Частично перекрытый открытый интервал расщепляется, полностью
// перекрытый - отбрасывается. Невалидные интервалы отбрасываются.
func Subtract(open []Range, blocked []Range) []Range {
	result := make([]Range, 0, len(open))
	for _, r := range open {
		if r.IsValid() {
			result = append(result, r)
		}
	}

	for _, block := range blocked {
		if !block.IsValid() {
			continue
		}

		next := make([]Range, 0, len(result))
		for _, r := range result {
			if !r.Overlaps(block) {
				next = append(next, r)
				continue
			}
			// Пересечение - оставляем куски слева и справа от блокировки
			if block.Start > r.Start {
				next = append(next, Range{Start: r.Start, End: block.Start})
			}
			if block.End < r.End {
				next = append(next, Range{Start: block.End, End: r.End})
			}
		}
		result = next
	}

	return result
}
