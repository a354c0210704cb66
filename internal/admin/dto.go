// AngelaMos | 2026
// dto.go

package admin

import (
	"math"

	"github.com/beanvoyage/storefront/internal/order"
)

type OverviewResponse struct {
	ActiveMembers      int      `json:"active_members"`
	MonthlyRevenue     int64    `json:"monthly_revenue"`
	PendingShipments   int      `json:"pending_shipments"`
	DeliveredShipments int      `json:"delivered_shipments"`
	AverageRating      *float64 `json:"average_rating"`
}

// ToOverviewResponse rounds the average rating to one decimal. A nil
// average means no reviews yet.
func ToOverviewResponse(o *order.Overview) OverviewResponse {
	resp := OverviewResponse{
		ActiveMembers:      o.ActiveMembers,
		MonthlyRevenue:     o.MonthlyRevenue,
		PendingShipments:   o.PendingShipments,
		DeliveredShipments: o.DeliveredShipments,
	}
	if o.AverageRating != nil {
		avg := math.Round(*o.AverageRating*10) / 10
		resp.AverageRating = &avg
	}
	return resp
}

type SystemStatsResponse struct {
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
