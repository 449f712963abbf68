package entity

type DashboardStats struct {
	TotalUsers       int            `json:"totalUsers"`
	UsersByRole      map[string]int `json:"usersByRole"`
	DisabledUsers    int            `json:"disabledUsers"`
	TotalPosts       int            `json:"totalPosts"`
	PostsByStatus    map[string]int `json:"postsByStatus"`
	TotalCategories  int            `json:"totalCategories"`
	LastScanAt       string         `json:"lastScanAt,omitempty"`
	FeedSynchronized bool           `json:"feedSynchronized"`
}
