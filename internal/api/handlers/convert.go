package handlers

import (
	"shopping-route-service/internal/api/dto"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/services"
)

func weightsResponse(w domain.PreferenceWeights) dto.WeightsResponse {
	return dto.WeightsResponse{
		Price:    w.Price,
		Distance: w.Distance,
		Quality:  w.Quality,
		Time:     w.Time,
		Preset:   string(w.Preset),
	}
}

func planResponse(p *services.Plan, calculating bool) dto.PlanResponse {
	res := dto.PlanResponse{
		Generation:   p.Generation,
		CalculatedAt: p.CalculatedAt,
		Calculating:  calculating,
		Weights:      weightsResponse(p.Weights),
		Assignment:   make(map[string][]string, len(p.Assignment)),
		Items:        make([]dto.ItemResponse, 0, len(p.Items)),
		Savings: dto.SavingsResponse{
			Total:          p.Savings.Total.StringFixed(2),
			VsAveragePrice: p.Savings.VsAveragePrice.StringFixed(2),
			PerStore:       make(map[string]string, len(p.Savings.PerStore)),
		},
		Warnings: make([]dto.WarningResponse, 0, len(p.Warnings)),
	}

	for storeID, ids := range p.Assignment {
		res.Assignment[storeID] = append([]string(nil), ids...)
	}
	for storeID, v := range p.Savings.PerStore {
		res.Savings.PerStore[storeID] = v.StringFixed(2)
	}

	for _, it := range p.Items {
		ir := dto.ItemResponse{
			ItemID:           it.ID,
			Name:             it.Name,
			Category:         it.Category,
			Quantity:         it.Quantity,
			Unit:             it.Unit,
			BestScore:        it.BestScore,
			ManuallyAssigned: it.ManuallyAssigned,
		}
		if it.IsAssigned() {
			ir.AssignedStoreID = it.AssignedStoreID
			ir.AssignedPrice = it.AssignedPrice.StringFixed(2)
		}
		res.Items = append(res.Items, ir)
	}

	for _, w := range p.Warnings {
		res.Warnings = append(res.Warnings, dto.WarningResponse{
			Code:    w.Code,
			ItemID:  w.ItemID,
			StoreID: w.StoreID,
			Message: w.Message,
		})
	}

	if p.Route != nil {
		res.Route = routeResponse(p.Route)
	}
	return res
}

func routeResponse(r *domain.Route) dto.RouteResponse {
	res := dto.RouteResponse{
		DepartAt:             r.DepartAt,
		TotalDistanceMiles:   r.TotalDistanceMiles,
		TotalDurationMinutes: r.TotalDurationMinutes,
		TotalSpend:           r.TotalSpend.StringFixed(2),
		Savings:              r.Savings.StringFixed(2),
		Stops:                make([]dto.StopResponse, 0, len(r.Stops)),
		Warnings:             make([]dto.WarningResponse, 0, len(r.Warnings)),
	}
	for _, s := range r.Stops {
		res.Stops = append(res.Stops, dto.StopResponse{
			StoreID:          s.StoreID,
			StoreName:        s.StoreName,
			Order:            s.Order,
			EstimatedArrival: s.EstimatedArrival,
			EstimatedMinutes: s.EstimatedMinutes,
			ItemCount:        s.ItemCount,
			ItemIDs:          append([]string(nil), s.ItemIDs...),
			EstimatedSpend:   s.EstimatedSpend.StringFixed(2),
			LegMiles:         s.LegMiles,
		})
	}
	for _, w := range r.Warnings {
		res.Warnings = append(res.Warnings, dto.WarningResponse{
			Code:    w.Code,
			StoreID: w.StoreID,
			Message: w.Message,
		})
	}
	return res
}

func sessionResponse(s *domain.ShoppingSession) dto.SessionResponse {
	res := dto.SessionResponse{
		SessionID:    s.ID,
		StoreID:      s.StoreID,
		StoreName:    s.StoreName,
		Status:       string(s.Status),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		CheckedCount: s.CheckedCount(),
		ActualTotal:  s.ActualTotal.StringFixed(2),
		ReceiptRef:   s.ReceiptRef,
		Items:        make([]dto.SessionItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		ir := dto.SessionItemResponse{
			ItemID:         it.ItemID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			Section:        it.Section,
			EstimatedPrice: it.EstimatedPrice.StringFixed(2),
			Checked:        it.Checked,
			Unavailable:    it.Unavailable,
			SubstituteID:   it.SubstituteID,
			SubstituteName: it.SubstituteName,
		}
		if it.ActualPrice != nil {
			v := it.ActualPrice.StringFixed(2)
			ir.ActualPrice = &v
		}
		res.Items = append(res.Items, ir)
	}
	return res
}
