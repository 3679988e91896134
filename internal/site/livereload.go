package site

import "bytes"

// LiveReloadSnippet reloads the page when the dev server announces a new
// build on its event stream.
const LiveReloadSnippet = `<script>
(function () {
  var es = new EventSource("/api/events");
  es.addEventListener("reload", function () { location.reload(); });
  es.onerror = function () {
    es.close();
    setTimeout(function () { location.reload(); }, 1000);
  };
})();
</script>
`

// InjectLiveReload inserts LiveReloadSnippet before the closing body tag,
// or appends it when there is none.
func InjectLiveReload(page []byte) []byte {
	i := bytes.LastIndex(page, []byte("</body>"))
	if i < 0 {
		return append(append([]byte{}, page...), LiveReloadSnippet...)
	}
	out := make([]byte, 0, len(page)+len(LiveReloadSnippet))
	out = append(out, page[:i]...)
	out = append(out, LiveReloadSnippet...)
	out = append(out, page[i:]...)
	return out
}
