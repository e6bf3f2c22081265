package model

type Corridor struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

type RouteResponse struct {
	Path     []string `json:"path"`
	HopCount int      `json:"hop_count"`
	Found    bool     `json:"found"`
	CacheHit bool     `json:"cache_hit"`
}

type WeightedRouteResponse struct {
	Path          []string `json:"path"`
	Distance      float64  `json:"distance"`
	ExploredNodes int      `json:"explored_nodes"`
	CacheHit      bool     `json:"cache_hit"`
}

type TraversalResponse struct {
	Algorithm string   `json:"algorithm"`
	Start     string   `json:"start"`
	Order     []string `json:"order,omitempty"`
	Path      []string `json:"path,omitempty"`
	Found     *bool    `json:"found,omitempty"`
	CacheHit  bool     `json:"cache_hit"`
}

type SpanningTreeResponse struct {
	Algorithm   string     `json:"algorithm"`
	Corridors   []Corridor `json:"corridors"`
	TotalWeight float64    `json:"total_weight"`
}

type LocationsResponse struct {
	Locations []string `json:"locations"`
	Count     int      `json:"count"`
}

type SearchResponse struct {
	Query       string   `json:"query"`
	Found       bool     `json:"found"`
	Suggestions []string `json:"suggestions"`
}

type ExistsResponse struct {
	Location string `json:"location"`
	Exists   bool   `json:"exists"`
}
