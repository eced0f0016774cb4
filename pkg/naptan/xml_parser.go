package naptan

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/pipelineerror"
	"github.com/transitflow/transitflow/pkg/xmlcursor"
)

// ParseXMLFile streams a NaPTAN document into stop point records. Invalid
// stop points are skipped with a warning; a missing root fails the document.
func ParseXMLFile(reader io.Reader) (*Document, error) {
	doc := &Document{}
	cursor := xmlcursor.NewCursor(reader)

	seenRoot := false

	for {
		tok, err := cursor.Token()
		if tok == nil || errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		ty, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch ty.Name.Local {
		case "NaPTAN":
			for _, attr := range ty.Attr {
				switch attr.Name.Local {
				case "CreationDateTime":
					doc.CreationDateTime = attr.Value
				case "ModificationDateTime":
					doc.ModificationDateTime = attr.Value
				case "SchemaVersion":
					doc.SchemaVersion = attr.Value
				}
			}

			if err := doc.Validate(); err != nil {
				return nil, err
			}
			seenRoot = true
		case "StopPoint":
			var stopPoint StopPoint
			if err := cursor.Decode(&stopPoint, &ty); err != nil {
				log.Warn().Err(err).Str("element", ty.Name.Local).Msg("Error decoding item")
				continue
			}
			if err := stopPoint.Validate(); err != nil {
				log.Warn().Err(err).Str("element", ty.Name.Local).Msg("Skipping invalid item")
				continue
			}

			doc.StopPoints = append(doc.StopPoints, &stopPoint)
		}
	}

	if !seenRoot {
		return nil, pipelineerror.Schemaf("document has no NaPTAN root element")
	}

	log.Debug().
		Str("modified", doc.ModificationDateTime).
		Int("stops", len(doc.StopPoints)).
		Msg("Parsed NaPTAN document")

	return doc, nil
}
