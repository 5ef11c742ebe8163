package memory

import "wealthdesk/internal/models"

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneUser(u models.User) models.User {
	u.LastLogin = clonePtr(u.LastLogin)
	return u
}

func cloneRecord(r models.InvestmentRecord) models.InvestmentRecord {
	r.CloseSide = clonePtr(r.CloseSide)
	r.SellRate = clonePtr(r.SellRate)
	r.SoldQty = clonePtr(r.SoldQty)
	r.CloseTime = clonePtr(r.CloseTime)
	r.SoldValue = clonePtr(r.SoldValue)
	return r
}
