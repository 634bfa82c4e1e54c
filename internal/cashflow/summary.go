package cashflow

import (
	"sort"
)

type CategoryTotal struct {
	CategoryID uint      `json:"category_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Type       EntryType `json:"type"`
	Total      int64     `json:"total"`
	Count      int       `json:"count"`
}

type MonthTotal struct {
	Month   string `json:"month"` // YYYY-MM
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Balance int64  `json:"balance"`
}

type Summary struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	Income     int64           `json:"income"`
	Expense    int64           `json:"expense"`
	Balance    int64           `json:"balance"`
	Entries    int             `json:"entries"`
	ByCategory []CategoryTotal `json:"by_category"`
	ByMonth    []MonthTotal    `json:"by_month"`
}

// Summarize totals entries. Balance is always Income - Expense. Categories
// are split by entry type, so one category used both ways yields two rows.
// Entries with an unknown type are ignored.
func Summarize(from, to string, entries []Entry) Summary {
	type catKey struct {
		id uint
		t  EntryType
	}
	sum := Summary{From: from, To: to, ByCategory: []CategoryTotal{}, ByMonth: []MonthTotal{}}
	cats := map[catKey]*CategoryTotal{}
	months := map[string]*MonthTotal{}

	for _, e := range entries {
		if !e.Type.Valid() {
			continue
		}
		sum.Entries++
		month := e.OccurredOn
		if len(month) >= 7 {
			month = month[:7]
		}
		m, ok := months[month]
		if !ok {
			m = &MonthTotal{Month: month}
			months[month] = m
		}
		k := catKey{e.CategoryID, e.Type}
		c, ok := cats[k]
		if !ok {
			c = &CategoryTotal{CategoryID: e.CategoryID, Code: e.CategoryCode, Name: e.CategoryName, Type: e.Type}
			cats[k] = c
		}
		c.Total += e.Amount
		c.Count++

		if e.Type == Income {
			sum.Income += e.Amount
			m.Income += e.Amount
		} else {
			sum.Expense += e.Amount
			m.Expense += e.Amount
		}
	}
	sum.Balance = sum.Income - sum.Expense

	for _, c := range cats {
		sum.ByCategory = append(sum.ByCategory, *c)
	}
	sort.Slice(sum.ByCategory, func(i, j int) bool {
		a, b := sum.ByCategory[i], sum.ByCategory[j]
		if a.Type != b.Type {
			return a.Type == Income
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.CategoryID < b.CategoryID
	})

	for _, m := range months {
		m.Balance = m.Income - m.Expense
		sum.ByMonth = append(sum.ByMonth, *m)
	}
	sort.Slice(sum.ByMonth, func(i, j int) bool { return sum.ByMonth[i].Month < sum.ByMonth[j].Month })
	return sum
}
