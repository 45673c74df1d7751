// Package pitch classifies Japanese pitch accent and renders mora-level
// accent diagrams.
package pitch

// smallKana fuses with the preceding character into a single mora.
const smallKana = "ゃゅょャュョァィゥェォぁぃぅぇぉ"

var smallKanaSet = func() map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range smallKana {
		set[r] = true
	}
	return set
}()

// SplitMorae segments a kana reading into morae. A small kana joins the
// character before it; everything else, including ん and ー, stands alone.
func SplitMorae(reading string) []string {
	runes := []rune(reading)
	var morae []string
	for i := 0; i < len(runes); i++ {
		if i+1 < len(runes) && smallKanaSet[runes[i+1]] {
			morae = append(morae, string(runes[i:i+2]))
			i++
			continue
		}
		morae = append(morae, string(runes[i]))
	}
	return morae
}
