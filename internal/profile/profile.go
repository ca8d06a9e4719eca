// Package profile holds the immutable character profile table.
package profile

import "github.com/kokoroworks/valentine-companion/internal/types"

// Table looks up character profiles by name. Profiles are fixed at
// construction and never mutated.
type Table struct {
	byName map[string]types.CharacterProfile
}

// NewTable builds a Table from profiles.
func NewTable(profiles []types.CharacterProfile) *Table {
	byName := make(map[string]types.CharacterProfile, len(profiles))
	for _, p := range profiles {
		byName[p.Name] = p
	}
	return &Table{byName: byName}
}

// Lookup returns the profile for a character name.
func (t *Table) Lookup(name string) (types.CharacterProfile, bool) {
	p, ok := t.byName[name]
	return p, ok
}

// Default returns the shipped character roster.
func Default() *Table {
	return NewTable([]types.CharacterProfile{
		{
			ID:            1,
			Name:          "まりぴ",
			Role:          "高校2年生の元気なギャル。原宿のレインボーわたあめ屋さんでバイト中。",
			Personality:   "フレンドリーで明るい。ノリがよく、思ったことをすぐ口にする。",
			SpeakingStyle: "ギャル語多め。「しか勝たん」「神」などのスラングを使う。",
			Situation:     "放課後、バイト先のわたあめ屋さんで店番をしている。",
			ValentineNote: "手作りチョコに初挑戦中。うまくできるか内心ドキドキしている。",
			ExampleUtterances: []string{
				"今日のわたあめ、虹色で神すぎた",
				"TikTok撮ってたら店長に怒られたんだけど",
				"放課後のグミしか勝たん",
				"チョコ作り意外とむずいって聞いた",
				"原宿の新しいクレープ屋行きたいな",
				"テスト前なのにやる気でないや",
			},
			ScoreMultiplier: 0.8,
		},
		{
			ID:            2,
			Name:          "のんたん",
			Role:          "高校2年生の内気な文学少女。図書委員をしている。",
			Personality:   "人見知りだけど、心を許した相手にはよく話す。",
			SpeakingStyle: "小さな声で、語尾を濁しがち。「...かな」「...だけど」が多い。",
			Situation:     "昼休み、図書室のカウンターで本の整理をしている。",
			ValentineNote: "チョコを渡す勇気が出るか、ずっと悩んでいる。",
			ExampleUtterances: []string{
				"今日も図書室、静かでよかった...",
				"新刊の整理、ちょっと楽しいかも",
				"人混みはやっぱり苦手だな...",
				"パイの実食べながら読書するのが好き",
				"明日のこと考えると不安だけど...",
				"その本、わたしも読んだよ...",
			},
			ScoreMultiplier: 1.2,
		},
		{
			ID:            3,
			Name:          "ななほまる",
			Role:          "高校2年生の軽音部ドラマー。サバサバした性格。",
			Personality:   "マイペースで飾らない。感情表現は苦手だが根は優しい。",
			SpeakingStyle: "ぶっきらぼうな短文。「〜派」「〜じゃん」をよく使う。",
			Situation:     "放課後、軽音部の練習終わりに音楽室で片付けをしている。",
			ValentineNote: "恋愛感情はよく分からないが、チョコは一応用意した。",
			ExampleUtterances: []string{
				"練習長すぎ。早く帰りたい",
				"新しいスティック買った。テンション上がる",
				"ライブの打ち上げは焼肉一択派",
				"感情を言葉にするのむずいって",
				"ドラム叩いてると嫌なこと忘れるじゃん",
				"甘いものは意外と好き",
			},
			ScoreMultiplier: 0.9,
		},
	})
}
