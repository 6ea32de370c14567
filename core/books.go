package core

import "fmt"

// BookNames lists the 66 canonical book names in canonical order. Numeric
// book identifiers in raw source files are 1-based indexes into this list.
var BookNames = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy", "Joshua",
	"Judges", "Ruth", "1 Samuel", "2 Samuel", "1 Kings", "2 Kings",
	"1 Chronicles", "2 Chronicles", "Ezra", "Nehemiah", "Esther", "Job",
	"Psalms", "Proverbs", "Ecclesiastes", "Song of Solomon", "Isaiah",
	"Jeremiah", "Lamentations", "Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk", "Zephaniah", "Haggai",
	"Zechariah", "Malachi", "Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians",
	"1 Timothy", "2 Timothy", "Titus", "Philemon", "Hebrews", "James",
	"1 Peter", "2 Peter", "1 John", "2 John", "3 John", "Jude", "Revelation",
}

// BookName maps a numeric book identifier to its canonical name.
// Identifiers outside 1-66 get a placeholder name so unrecognized source
// rows remain traceable instead of failing the whole normalization run.
func BookName(id int) string {
	if id >= 1 && id <= len(BookNames) {
		return BookNames[id-1]
	}
	return fmt.Sprintf("Book%d", id)
}
