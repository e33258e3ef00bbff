// Package model 内容服务的只读实体
// JSON 字段名同时是搜索索引里的文档字段名和缓存里的序列化字段名
package model

// GenreRef 影片里冗余的类型信息
type GenreRef struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// PersonRef 影片里冗余的人员信息
type PersonRef struct {
	UUID     string `json:"uuid"`
	FullName string `json:"full_name"`
}

// Film 影片
// IMDBRating 可能为空，nil 与 0 含义不同
type Film struct {
	UUID        string      `json:"uuid"`
	Title       string      `json:"title"`
	IMDBRating  *float64    `json:"imdb_rating"`
	Description string      `json:"description"`
	Genre       []GenreRef  `json:"genre"`
	Directors   []PersonRef `json:"directors"`
	Actors      []PersonRef `json:"actors"`
	Writers     []PersonRef `json:"writers"`
}

// Genre 影片类型
type Genre struct {
	UUID        string  `json:"uuid"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// FilmForPerson 人员参与的影片及角色
type FilmForPerson struct {
	UUID       string   `json:"uuid"`
	Title      string   `json:"title"`
	IMDBRating *float64 `json:"imdb_rating"`
	Roles      []string `json:"roles"`
}

// Person 人员
type Person struct {
	UUID     string          `json:"uuid"`
	FullName string          `json:"full_name"`
	Films    []FilmForPerson `json:"films"`
}
