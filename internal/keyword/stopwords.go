package keyword

import "strings"

// Terms that keep showing up as "trending" but carry no search intent on
// their own: generic news verbs/nouns, portal navigation chrome, country
// and big-city names, and bare role titles. Grown over time from garbage
// keywords spotted on the published index.
var stopwords = map[string]struct{}{
	// generic news verbs/nouns
	"확인": {}, "발표": {}, "공개": {}, "공식": {}, "논란": {}, "화제": {},
	"의혹": {}, "충격": {}, "경악": {}, "포착": {}, "등장": {}, "목격": {},
	"발견": {}, "단독": {}, "속보": {}, "긴급": {}, "결국": {}, "근황": {},
	"이유": {}, "반응": {}, "입장": {}, "심경": {}, "해명": {}, "상황": {},

	// portal navigation chrome
	"뉴스": {}, "더보기": {}, "오피니언": {}, "랭킹": {}, "실시간": {},
	"이슈": {}, "검색": {}, "전체": {}, "영상": {}, "사진": {}, "기자": {},
	"연예": {}, "스포츠": {}, "날씨": {},

	// temporal words
	"오늘": {}, "내일": {}, "어제": {}, "현재": {}, "최근": {},

	// countries and big cities
	"한국": {}, "대한민국": {}, "미국": {}, "일본": {}, "중국": {}, "북한": {},
	"러시아": {}, "서울": {}, "부산": {}, "인천": {}, "대구": {}, "대전": {},
	"광주": {}, "울산": {},

	// bare role titles ("[role] [name]" headline patterns)
	"대통령": {}, "장관": {}, "의원": {}, "대표": {}, "회장": {}, "감독": {},
	"선수": {}, "배우": {}, "가수": {}, "아나운서": {},
}

// IsStopword reports whether the whole term is a known over-generic word.
func IsStopword(term string) bool {
	_, ok := stopwords[strings.ToLower(term)]
	return ok
}
