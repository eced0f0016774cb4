package xmlcursor

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<PublicationDelivery xmlns="http://www.netex.org.uk/netex" version="1.1">
  <PublicationTimestamp>2023-01-12T09:00:00</PublicationTimestamp>
  <ParticipantRef>SYS001</ParticipantRef>
  <dataObjects>
    <CompositeFrame id="frame:1" version="1">
      <Name>Example</Name>
    </CompositeFrame>
  </dataObjects>
</PublicationDelivery>`

func readRoot(t *testing.T, document string) (*Cursor, *Node) {
	t.Helper()

	cursor := NewCursor(strings.NewReader(document))
	for {
		tok, err := cursor.Token()
		require.NoError(t, err)

		if start, ok := tok.(xml.StartElement); ok {
			root, err := cursor.ReadTree(start)
			require.NoError(t, err)
			return cursor, root
		}
	}
}

func TestReadTree(t *testing.T) {
	_, root := readRoot(t, sampleDocument)

	assert.Equal(t, "PublicationDelivery", root.Local)
	assert.True(t, root.IsNetex())
	assert.Equal(t, "1.1", root.Attr("version"))
	assert.Equal(t, "SYS001", root.ChildText("ParticipantRef"))

	frame := root.Find("dataObjects", "CompositeFrame")
	require.NotNil(t, frame)
	assert.Equal(t, "frame:1", frame.Attr("id"))
	assert.Equal(t, "Example", frame.ChildText("Name"))
}

func TestLineNumbers(t *testing.T) {
	_, root := readRoot(t, sampleDocument)

	assert.Equal(t, 2, root.Line)
	assert.Equal(t, 3, root.Child("PublicationTimestamp").Line)

	frame := root.Find("dataObjects", "CompositeFrame")
	require.NotNil(t, frame)
	assert.Equal(t, 6, frame.Line)
}

func TestFindAll(t *testing.T) {
	document := `<root><items><item>a</item><item>b</item></items></root>`
	_, root := readRoot(t, document)

	items := root.FindAll("items", "item")
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Text)
	assert.Equal(t, "b", items[1].Text)
}

func TestRelease(t *testing.T) {
	_, root := readRoot(t, sampleDocument)

	dataObjects := root.Child("dataObjects")
	require.NotNil(t, dataObjects)
	dataObjects.Release()
	assert.Nil(t, dataObjects.Child("CompositeFrame"))
}

func TestMissingPaths(t *testing.T) {
	_, root := readRoot(t, sampleDocument)

	assert.Nil(t, root.Find("dataObjects", "ServiceFrame"))
	assert.Equal(t, "", root.ChildText("NotThere"))
	assert.Equal(t, "", root.Attr("missing"))
}
