package dto

// Page 分页响应包装，保持 {count,next,previous,results} 的接口形状
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}
