// Package browser holds what the real DriverPort adapters share: the in-page script
// that snapshots matched elements and its decoding.
package browser

import (
	"encoding/json"
	"fmt"

	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

// QueryScript takes one selector argument and returns a snapshot of every match in
// document order. XPath is recognised the same way as locator.IsXPath.
const QueryScript = `(selector) => {
  let xpath = null;
  if (selector.startsWith('xpath=')) {
    xpath = selector.slice(6);
  } else if (selector.startsWith('//') || selector.startsWith('(//')) {
    xpath = selector;
  }

  let nodes = [];
  if (xpath !== null) {
    const res = document.evaluate(xpath, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
    for (let i = 0; i < res.snapshotLength; i++) {
      const n = res.snapshotItem(i);
      if (n.nodeType === Node.ELEMENT_NODE) nodes.push(n);
    }
  } else {
    nodes = Array.from(document.querySelectorAll(selector));
  }

  return nodes.map((el) => {
    const style = window.getComputedStyle(el);
    const rect = el.getBoundingClientRect();
    const attributes = {};
    for (const a of el.attributes) attributes[a.name] = a.value;

    const visible = el.isConnected && rect.width > 0 && rect.height > 0 &&
      style.visibility !== 'hidden' && style.display !== 'none';
    const disabled = el.disabled === true || el.getAttribute('aria-disabled') === 'true' ||
      el.closest('fieldset[disabled]') !== null;

    return {
      tag: el.tagName.toLowerCase(),
      text: typeof el.innerText === 'string' ? el.innerText : (el.textContent || ''),
      value: typeof el.value === 'string' ? el.value : '',
      attributes: attributes,
      classes: Array.from(el.classList),
      visible: visible,
      enabled: !disabled,
      checked: el.checked === true,
      pointerEvents: style.pointerEvents,
      inViewport: rect.bottom > 0 && rect.right > 0 && rect.top < window.innerHeight && rect.left < window.innerWidth,
    };
  });
}`

// DecodeStates turns the JSON result of QueryScript into element states.
func DecodeStates(raw []byte) ([]entity.ElementState, error) {
	var states []entity.ElementState
	if err := json.Unmarshal(raw, &states); err != nil {
		return nil, fmt.Errorf("decode element snapshot: %w", err)
	}
	return states, nil
}

// Selector returns sel in the form the browser engines accept: XPath prefixed with
// "xpath=", CSS untouched.
func Selector(sel string) string {
	return locator.Normalize(sel)
}
