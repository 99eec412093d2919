package form

import (
	"strconv"
	"strings"
)

// Glyph advance widths for the Helvetica core font, in 1/1000 em, indexed
// from U+0020 (space) through U+007E (tilde). Taken from the standard AFM
// so centered and width-fitted text lands where a PDF viewer will place it.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, // ' ' ! " # $ % & ' ( )
	389, 584, 278, 333, 278, 278, 556, 556, 556, 556, // * + , - . / 0 1 2 3
	556, 556, 556, 556, 556, 556, 278, 278, 584, 584, // 4 5 6 7 8 9 : ; < =
	584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, // > ? @ A B C D E F G
	722, 278, 500, 667, 556, 833, 722, 778, 667, 778, // H I J K L M N O P Q
	722, 667, 611, 722, 667, 944, 667, 667, 611, 278, // R S T U V W X Y Z [
	278, 278, 469, 556, 333, 556, 556, 500, 556, 556, // \ ] ^ _ ` a b c d e
	278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // f g h i j k l m n o
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, // p q r s t u v w x y
	500, 334, 260, 334, 584, // z { | } ~
}

const defaultGlyphWidth = 556

// stringWidth returns the rendered width in points of s drawn in Helvetica
// at the given size. Characters outside the table are assumed average width.
func stringWidth(s string, size float64) float64 {
	units := 0
	for _, r := range s {
		if r >= 0x20 && r <= 0x7e {
			units += helveticaWidths[r-0x20]
		} else {
			units += defaultGlyphWidth
		}
	}
	return float64(units) * size / 1000.0
}

// widthsArray renders the glyph width table as a PDF array for the overlay
// font dictionary. Without declared widths a text extractor reading the
// stamped output sees every glyph at the same position and loses word
// boundaries.
func widthsArray() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, w := range helveticaWidths {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(w))
	}
	b.WriteByte(']')
	return b.String()
}

// fitString trims s from the right until it renders within maxWidth points
// at the given size. Used to keep descriptions inside the content band
// instead of bleeding into the unit-of-issue column.
func fitString(s string, size, maxWidth float64) string {
	if stringWidth(s, size) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && stringWidth(string(runes), size) > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
