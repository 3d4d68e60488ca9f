package charts

type Palette []string

var Category10 = Palette(splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf"))

func (p Palette) At(i int) string {
	if len(p) == 0 {
		return "black"
	}
	return p[i%len(p)]
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}
