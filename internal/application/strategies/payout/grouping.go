package payout

import "payoutd/internal/domain/entities"

// payoutGroups chunks orders into backend-admissible groups of at most
// groupSize. The groups partition the input exactly: no duplication, no
// omission, input order preserved.
func payoutGroups(orders []*entities.PayoutOrder, groupSize int) [][]*entities.PayoutOrder {
	if groupSize <= 0 || len(orders) == 0 {
		return nil
	}

	groups := make([][]*entities.PayoutOrder, 0, (len(orders)+groupSize-1)/groupSize)
	for start := 0; start < len(orders); start += groupSize {
		end := start + groupSize
		if end > len(orders) {
			end = len(orders)
		}
		groups = append(groups, orders[start:end])
	}

	return groups
}

type tokenGroup struct {
	TokenName string
	Orders    []*entities.PayoutOrder
}

// groupOrdersByToken partitions orders by token identity, since distinct
// settlement instruments cannot share one transaction. Partition order
// follows first appearance so runs are deterministic.
func groupOrdersByToken(orders []*entities.PayoutOrder) []tokenGroup {
	index := map[string]int{}
	groups := make([]tokenGroup, 0)

	for _, order := range orders {
		tokenName := order.Asset.Name
		position, exists := index[tokenName]
		if !exists {
			index[tokenName] = len(groups)
			groups = append(groups, tokenGroup{TokenName: tokenName, Orders: []*entities.PayoutOrder{order}})
			continue
		}
		groups[position].Orders = append(groups[position].Orders, order)
	}

	return groups
}

func orderIDs(orders []*entities.PayoutOrder) []string {
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	return ids
}
