package site

// Static assets written into the output directory on every build.

const siteCSS = `:root {
  --bg: #ffffff;
  --fg: #1f2933;
  --muted: #6b7280;
  --border: #e5e7eb;
  --accent: #3b82f6;
  --panel: #f9fafb;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  color: var(--fg);
  background: var(--bg);
  line-height: 1.6;
}

.layout { display: flex; min-height: 100vh; }

.sidebar {
  width: 240px;
  flex-shrink: 0;
  border-right: 1px solid var(--border);
  padding: 1.5rem 1rem;
}

.sidebar ul { list-style: none; margin: 0 0 1rem; padding: 0; }
.nav-section-title { margin: 0 0 0.25rem; font-size: 0.8rem; text-transform: uppercase; color: var(--muted); }
.nav-link { display: block; padding: 0.2rem 0.5rem; border-radius: 4px; color: var(--fg); text-decoration: none; }
.nav-link:hover { background: var(--panel); }
.nav-link.active { color: var(--accent); font-weight: 600; }

.page { flex: 1; max-width: 820px; padding: 2rem 3rem; }
.page pre { background: var(--panel); border: 1px solid var(--border); border-radius: 6px; padding: 0.75rem 1rem; overflow-x: auto; }
.page code { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 0.9em; }

.site-header { border-bottom: 1px solid var(--border); padding: 0.75rem 1.5rem; display: flex; align-items: baseline; gap: 1rem; }
.site-title { font-size: 1.1rem; font-weight: 700; margin: 0; }
.site-subtitle { color: var(--muted); font-size: 0.85rem; }

/* Tip cards */
.tip-list { display: flex; flex-direction: column; gap: 0.75rem; margin-top: 1.5rem; }

.tip-card { border: 1px solid var(--border); border-radius: 8px; overflow: hidden; }
.tip-card.open { border-color: var(--accent); }

.tip-header {
  display: flex;
  align-items: center;
  gap: 0.6rem;
  padding: 0.75rem 1rem;
  cursor: pointer;
  user-select: none;
}
.tip-header:hover { background: var(--panel); }
.tip-title { margin: 0; font-size: 1rem; flex: 1; }
.tip-arrow { transition: transform 0.15s ease; color: var(--muted); }
.tip-arrow.rotated { transform: rotate(90deg); }

.tip-body { padding: 0 1rem 1rem; border-top: 1px solid var(--border); }
.tip-description { color: var(--fg); }
.tip-panel-label { margin: 0.75rem 0 0.4rem; font-size: 0.75rem; text-transform: uppercase; color: var(--muted); }
.tip-preview-content { border: 1px dashed var(--border); border-radius: 6px; padding: 0.75rem; }
.code-block pre { margin: 0; }
`

// liveJS is the browser half of the live protocol: it opens the session
// socket, forwards clicks on interactive nodes, and applies patch frames.
// Node addressing mirrors the server: pre-order numbering of the component
// subtree, counting elements and text nodes, with data-raw containers
// counted as the container plus one node for their entire content.
const liveJS = `(function () {
  'use strict';

  var root = document.querySelector('[data-live-component]');
  if (!root) return;

  var componentID = root.getAttribute('data-live-component');
  // The wrapper is host markup; the component's own root is its first
  // element child, numbered 1 like the server's differ numbers it
  var compRoot = root.firstElementChild || root;
  var sessionID = Math.random().toString(36).slice(2, 10);
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/live/' + sessionID);
  ws.binaryType = 'arraybuffer';

  var FRAME_PATCHES = 0x00, FRAME_EVENT = 0x01, FRAME_CONTROL = 0x02;
  var OP_REPLACE_TEXT = 0x01, OP_SET_ATTR = 0x02, OP_REMOVE_NODE = 0x03,
      OP_INSERT_NODE = 0x04, OP_UPDATE_EVENTS = 0x05, OP_REMOVE_ATTR = 0x06,
      OP_MOVE_NODE = 0x07, OP_REPLACE_RAW = 0x08;
  var EVENT_TOGGLE = 0x02;

  function Writer() { this.bytes = []; }
  Writer.prototype.byte = function (b) { this.bytes.push(b & 0xff); };
  Writer.prototype.uvarint = function (v) {
    while (v >= 0x80) { this.byte((v & 0x7f) | 0x80); v = Math.floor(v / 128); }
    this.byte(v);
  };
  Writer.prototype.string = function (s) {
    var enc = new TextEncoder().encode(s);
    this.uvarint(enc.length);
    for (var i = 0; i < enc.length; i++) this.byte(enc[i]);
  };
  Writer.prototype.buffer = function () { return new Uint8Array(this.bytes); };

  function Reader(buf) { this.view = new Uint8Array(buf); this.pos = 0; }
  Reader.prototype.byte = function () { return this.view[this.pos++]; };
  Reader.prototype.uvarint = function () {
    var v = 0, shift = 1;
    for (;;) {
      var b = this.byte();
      v += (b & 0x7f) * shift;
      if ((b & 0x80) === 0) return v;
      shift *= 128;
    }
  };
  Reader.prototype.string = function () {
    var len = this.uvarint();
    var slice = this.view.subarray(this.pos, this.pos + len);
    this.pos += len;
    return new TextDecoder().decode(slice);
  };
  Reader.prototype.uint32le = function () {
    var v = this.byte() | (this.byte() << 8) | (this.byte() << 16) | (this.byte() << 24);
    return v >>> 0;
  };

  // Number the mounted subtree the way the server's differ does.
  function indexNodes() {
    var map = {};
    var next = 1;
    function walk(node) {
      if (node.nodeType === Node.TEXT_NODE) {
        if (!node.textContent.trim() && node.textContent.indexOf(' ') < 0) return;
        map[next++] = node;
        return;
      }
      if (node.nodeType !== Node.ELEMENT_NODE) return;
      map[next++] = node;
      if (node.hasAttribute('data-raw')) {
        // Entire raw content counts as one virtual node
        map[next++] = node;
        return;
      }
      for (var child = node.firstChild; child; child = child.nextSibling) walk(child);
    }
    walk(compRoot);
    return map;
  }

  function applyPatches(reader) {
    var nodes = indexNodes();
    var count = reader.uvarint();
    for (var i = 0; i < count; i++) {
      var op = reader.byte();
      var id, target;
      switch (op) {
        case OP_REPLACE_TEXT:
          id = reader.uvarint();
          var text = reader.string();
          target = nodes[id];
          if (target) target.textContent = text;
          break;
        case OP_REPLACE_RAW:
          id = reader.uvarint();
          var markup = reader.string();
          target = nodes[id];
          if (target) target.innerHTML = markup;
          break;
        case OP_SET_ATTR:
          id = reader.uvarint();
          var key = reader.string(), value = reader.string();
          target = nodes[id];
          if (target && target.setAttribute) target.setAttribute(key, value);
          break;
        case OP_REMOVE_ATTR:
          id = reader.uvarint();
          var rkey = reader.string();
          target = nodes[id];
          if (target && target.removeAttribute) target.removeAttribute(rkey);
          break;
        case OP_REMOVE_NODE:
          id = reader.uvarint();
          target = nodes[id];
          if (target && target.parentNode) target.parentNode.removeChild(target);
          break;
        case OP_INSERT_NODE:
          reader.uvarint(); // new node id, unused: we re-index per batch
          var parentID = reader.uvarint();
          var beforeID = reader.uvarint();
          var html = reader.string();
          var parent = parentID ? nodes[parentID] : compRoot;
          if (parent) {
            var tpl = document.createElement('template');
            tpl.innerHTML = html;
            var before = beforeID ? nodes[beforeID] : null;
            parent.insertBefore(tpl.content, before);
          }
          break;
        case OP_MOVE_NODE:
          id = reader.uvarint();
          var mParent = reader.uvarint();
          var mBefore = reader.uvarint();
          target = nodes[id];
          var p = mParent ? nodes[mParent] : compRoot;
          if (target && p) p.insertBefore(target, mBefore ? nodes[mBefore] : null);
          break;
        case OP_UPDATE_EVENTS:
          reader.uvarint();
          reader.uint32le();
          break;
        default:
          return; // unknown op, abandon the batch
      }
      // Mutations shift numbering; re-index before the next patch
      nodes = indexNodes();
    }
  }

  ws.onopen = function () {
    var w = new Writer();
    w.byte(FRAME_CONTROL);
    w.string('HELLO');
    w.string(componentID);
    ws.send(w.buffer());
  };

  ws.onmessage = function (msg) {
    var reader = new Reader(msg.data);
    var frame = reader.byte();
    if (frame === FRAME_PATCHES) applyPatches(reader);
  };

  root.addEventListener('click', function (e) {
    var el = e.target.closest('[data-hid]');
    if (!el || !root.contains(el)) return;
    var w = new Writer();
    w.byte(FRAME_EVENT);
    w.byte(EVENT_TOGGLE);
    w.uvarint(parseInt(el.getAttribute('data-hid').slice(1), 10));
    ws.send(w.buffer());
  });
})();
`

// reloadJS connects to the dev server and reloads the page on rebuilds
const reloadJS = `(function () {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/__reload');
  ws.onmessage = function () { location.reload(); };
  ws.onclose = function () { setTimeout(function () { location.reload(); }, 1500); };
})();
`
