package model

// FilmShort 列表、搜索与人员作品接口返回的精简影片
type FilmShort struct {
	UUID       string   `json:"uuid"`
	Title      string   `json:"title"`
	IMDBRating *float64 `json:"imdb_rating"`
}

// PersonFilmRole 人员详情里的作品，只保留 id 与角色
type PersonFilmRole struct {
	UUID  string   `json:"uuid"`
	Roles []string `json:"roles"`
}

// PersonDetail 人员详情与人员搜索的返回结构
type PersonDetail struct {
	UUID     string           `json:"uuid"`
	FullName string           `json:"full_name"`
	Films    []PersonFilmRole `json:"films"`
}

// Short 精简影片
func (f Film) Short() FilmShort {
	return FilmShort{UUID: f.UUID, Title: f.Title, IMDBRating: f.IMDBRating}
}

// Short 精简影片
func (f FilmForPerson) Short() FilmShort {
	return FilmShort{UUID: f.UUID, Title: f.Title, IMDBRating: f.IMDBRating}
}

// Detail 对外展示的人员，作品列表为空时 films 输出 null
func (p Person) Detail() PersonDetail {
	d := PersonDetail{UUID: p.UUID, FullName: p.FullName}
	if len(p.Films) == 0 {
		return d
	}
	d.Films = make([]PersonFilmRole, 0, len(p.Films))
	for _, f := range p.Films {
		d.Films = append(d.Films, PersonFilmRole{UUID: f.UUID, Roles: f.Roles})
	}
	return d
}

// ShortFilms 批量转换
func ShortFilms(films []Film) []FilmShort {
	out := make([]FilmShort, 0, len(films))
	for _, f := range films {
		out = append(out, f.Short())
	}
	return out
}

// ShortPersonFilms 批量转换
func ShortPersonFilms(films []FilmForPerson) []FilmShort {
	out := make([]FilmShort, 0, len(films))
	for _, f := range films {
		out = append(out, f.Short())
	}
	return out
}

// PersonDetails 批量转换
func PersonDetails(persons []Person) []PersonDetail {
	out := make([]PersonDetail, 0, len(persons))
	for _, p := range persons {
		out = append(out, p.Detail())
	}
	return out
}
